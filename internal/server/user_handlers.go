package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserComments handles GET /api/user/comments. Each comment carries the
// episode title and its current like count, newest first.
func (s *Server) GetUserComments(c *fiber.Ctx) error {
	comments, err := s.commentService.GetUserCommentActivity(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": comments})
}

// GetFavoriteEpisodes handles GET /api/user/favorite-episodes
func (s *Server) GetFavoriteEpisodes(c *fiber.Ctx) error {
	episodes, err := s.userService.GetFavoriteEpisodes(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": episodes})
}

// GetFavoriteBooks handles GET /api/user/favorite-books
func (s *Server) GetFavoriteBooks(c *fiber.Ctx) error {
	books, err := s.userService.GetFavoriteBooks(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": books})
}

// AddFavoriteBook handles POST /api/user/favorite-books/:bookId. Adding a
// book that is already favorited is rejected with 400.
func (s *Server) AddFavoriteBook(c *fiber.Ctx) error {
	bookID, err := s.parseID(c, "bookId")
	if err != nil {
		return nil
	}

	if err := s.userService.AddFavoriteBook(c.Context(), currentUserID(c), bookID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Book added to favorites"})
}

// RemoveFavoriteBook handles DELETE /api/user/favorite-books/:bookId.
// Removing a book that is not favorited is rejected with 400.
func (s *Server) RemoveFavoriteBook(c *fiber.Ctx) error {
	bookID, err := s.parseID(c, "bookId")
	if err != nil {
		return nil
	}

	if err := s.userService.RemoveFavoriteBook(c.Context(), currentUserID(c), bookID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Book removed from favorites"})
}
