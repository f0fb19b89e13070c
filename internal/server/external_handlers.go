package server

import (
	"earshot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetYouTubeVideo handles GET /api/external-apis/youtube/videos/:videoId.
// Upstream 403/404 statuses are relayed to the client.
func (s *Server) GetYouTubeVideo(c *fiber.Ctx) error {
	videoID := c.Params("videoId")
	if videoID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Video ID is required"))
	}

	video, err := s.youtube.GetVideo(c.Context(), videoID)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(video)
}

// GetSpotifyEpisode handles GET /api/external-apis/spotify/episodes/:episodeId.
// Upstream 400/401/404/429 statuses are relayed to the client.
func (s *Server) GetSpotifyEpisode(c *fiber.Ctx) error {
	episodeID := c.Params("episodeId")
	if episodeID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Episode ID is required"))
	}

	episode, err := s.spotify.GetEpisode(c.Context(), episodeID)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(episode)
}
