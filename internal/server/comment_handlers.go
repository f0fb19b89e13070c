package server

import (
	"earshot/internal/models"
	"earshot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/episodes/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	episodeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	params := parsePageParams(c)

	comments, pagination, err := s.commentService.ListComments(c.Context(), episodeID, params.Page, params.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       comments,
		"pagination": pagination,
	})
}

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		EpisodeID uint   `json:"episode_id"`
		Content   string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.EpisodeID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Episode ID is required"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:    currentUserID(c),
		EpisodeID: req.EpisodeID,
		Content:   req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
	}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// LikeComment handles POST /api/comments/:id/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.commentService.LikeComment(c.Context(), currentUserID(c), commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": true, "like_count": count})
}

// UnlikeComment handles DELETE /api/comments/:id/like
func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.commentService.UnlikeComment(c.Context(), currentUserID(c), commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": false, "like_count": count})
}
