package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetLikeStatus handles GET /api/likes/:episodeId/status
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	episodeID, err := s.parseID(c, "episodeId")
	if err != nil {
		return nil
	}

	if _, err := s.episodeRepo.GetByID(c.Context(), episodeID); err != nil {
		return respondError(c, err)
	}

	liked, err := s.likeService.IsLiked(c.Context(), currentUserID(c), episodeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// GetLikeCount handles GET /api/likes/:episodeId/count (public)
func (s *Server) GetLikeCount(c *fiber.Ctx) error {
	episodeID, err := s.parseID(c, "episodeId")
	if err != nil {
		return nil
	}

	episode, err := s.episodeRepo.GetByID(c.Context(), episodeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"like_count": episode.LikesCount})
}

// LikeEpisode handles POST /api/likes/:episodeId. Liking twice is a no-op
// that still returns the current count.
func (s *Server) LikeEpisode(c *fiber.Ctx) error {
	episodeID, err := s.parseID(c, "episodeId")
	if err != nil {
		return nil
	}

	count, err := s.likeService.LikeEpisode(c.Context(), currentUserID(c), episodeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": true, "like_count": count})
}

// UnlikeEpisode handles DELETE /api/likes/:episodeId
func (s *Server) UnlikeEpisode(c *fiber.Ctx) error {
	episodeID, err := s.parseID(c, "episodeId")
	if err != nil {
		return nil
	}

	count, err := s.likeService.UnlikeEpisode(c.Context(), currentUserID(c), episodeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": false, "like_count": count})
}
