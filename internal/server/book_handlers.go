package server

import (
	"strconv"

	"earshot/internal/models"
	"earshot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBooks handles GET /api/books
func (s *Server) GetBooks(c *fiber.Ctx) error {
	books, err := s.bookService.ListBooks(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": books})
}

// GetBook handles GET /api/books/:id
func (s *Server) GetBook(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	book, err := s.bookService.GetBookByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(book)
}

// CreateBook handles POST /api/books (admin, multipart)
func (s *Server) CreateBook(c *fiber.Ctx) error {
	in := service.CreateBookInput{
		Title:  c.FormValue("title"),
		Author: c.FormValue("author"),
	}

	if v := c.FormValue("featuredEpisodeId"); v != "" {
		id, parseErr := strconv.ParseUint(v, 10, 32)
		if parseErr != nil || id == 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid featured episode ID"))
		}
		episodeID := uint(id)
		in.FeaturedEpisodeID = &episodeID
	}

	coverPath, err := s.saveUploadedImage(c, "cover")
	if err != nil {
		return respondError(c, err)
	}
	in.CoverImagePath = coverPath

	book, err := s.bookService.CreateBook(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(book)
}
