package server

import (
	"strconv"
	"strings"
	"time"

	"earshot/internal/models"
	"earshot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetEpisodes handles GET /api/episodes
func (s *Server) GetEpisodes(c *fiber.Ctx) error {
	params := parsePageParams(c)

	episodes, pagination, err := s.episodeService.ListEpisodes(c.Context(), params.Page, params.Limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       episodes,
		"pagination": pagination,
	})
}

// GetEpisodeBySlug handles GET /api/episodes/:slug
func (s *Server) GetEpisodeBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid slug"))
	}

	episode, err := s.episodeService.GetEpisodeBySlug(c.Context(), slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(episode)
}

// CreateEpisode handles POST /api/episodes (admin, multipart)
func (s *Server) CreateEpisode(c *fiber.Ctx) error {
	in := service.CreateEpisodeInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		YoutubeID:   c.FormValue("youtubeId"),
		SpotifyID:   c.FormValue("spotifyId"),
		YoutubeURL:  c.FormValue("youtubeUrl"),
		SpotifyURL:  c.FormValue("spotifyUrl"),
	}

	if v := c.FormValue("duration"); v != "" {
		duration, err := strconv.ParseFloat(v, 64)
		if err != nil || duration < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid duration"))
		}
		in.Duration = duration
	}
	if v := c.FormValue("episodeNumber"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid episode number"))
		}
		in.EpisodeNumber = n
	}
	if v := c.FormValue("publishDate"); v != "" {
		publishDate, err := parseDate(v)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid publish date"))
		}
		in.PublishDate = publishDate
	}
	if v := c.FormValue("tags"); v != "" {
		in.Tags = splitTags(v)
	}

	imagePath, err := s.saveUploadedImage(c, "image")
	if err != nil {
		return respondError(c, err)
	}
	in.ImagePath = imagePath

	episode, err := s.episodeService.CreateEpisode(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(episode)
}

// UpdateEpisode handles PATCH /api/episodes/:id (admin, multipart)
func (s *Server) UpdateEpisode(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	in := service.UpdateEpisodeInput{EpisodeID: id}

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	get := func(key string) (string, bool) {
		vals, ok := form.Value[key]
		if !ok || len(vals) == 0 {
			return "", false
		}
		return vals[0], true
	}

	if v, ok := get("title"); ok {
		in.Title = &v
	}
	if v, ok := get("description"); ok {
		in.Description = &v
	}
	if v, ok := get("youtubeId"); ok {
		in.YoutubeID = &v
	}
	if v, ok := get("spotifyId"); ok {
		in.SpotifyID = &v
	}
	if v, ok := get("youtubeUrl"); ok {
		in.YoutubeURL = &v
	}
	if v, ok := get("spotifyUrl"); ok {
		in.SpotifyURL = &v
	}
	if v, ok := get("duration"); ok {
		duration, parseErr := strconv.ParseFloat(v, 64)
		if parseErr != nil || duration < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid duration"))
		}
		in.Duration = &duration
	}
	if v, ok := get("episodeNumber"); ok {
		n, parseErr := strconv.Atoi(v)
		if parseErr != nil || n < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid episode number"))
		}
		in.EpisodeNumber = &n
	}
	if v, ok := get("publishDate"); ok {
		publishDate, parseErr := parseDate(v)
		if parseErr != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid publish date"))
		}
		in.PublishDate = &publishDate
	}
	if v, ok := get("tags"); ok {
		in.Tags = splitTags(v)
	}

	imagePath, err := s.saveUploadedImage(c, "image")
	if err != nil {
		return respondError(c, err)
	}
	if imagePath != "" {
		in.ImagePath = &imagePath
	}

	episode, err := s.episodeService.UpdateEpisode(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(episode)
}

// DeleteEpisode handles DELETE /api/episodes/:id (admin)
func (s *Server) DeleteEpisode(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.episodeService.DeleteEpisode(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Episode deleted"})
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

// splitTags turns a comma-separated tag list into trimmed non-empty entries.
func splitTags(v string) []string {
	parts := strings.Split(v, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
