// Package service contains the business logic sitting between HTTP handlers
// and repositories.
package service

import (
	"context"
	"time"

	"earshot/internal/models"
	"earshot/internal/repository"

	"github.com/gosimple/slug"
)

type EpisodeService struct {
	episodeRepo repository.EpisodeRepository
}

type CreateEpisodeInput struct {
	Title         string
	Description   string
	Duration      float64
	PublishDate   time.Time
	Tags          []string
	EpisodeNumber int
	YoutubeID     string
	SpotifyID     string
	YoutubeURL    string
	SpotifyURL    string
	ImagePath     string
}

type UpdateEpisodeInput struct {
	EpisodeID     uint
	Title         *string
	Description   *string
	Duration      *float64
	PublishDate   *time.Time
	Tags          []string
	EpisodeNumber *int
	YoutubeID     *string
	SpotifyID     *string
	YoutubeURL    *string
	SpotifyURL    *string
	ImagePath     *string
}

func NewEpisodeService(episodeRepo repository.EpisodeRepository) *EpisodeService {
	return &EpisodeService{episodeRepo: episodeRepo}
}

func validateTitle(title string) error {
	const minTitleLen, maxTitleLen = 2, 100
	if len(title) < minTitleLen {
		return models.NewValidationError("Title must be at least 2 characters")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title must be at most 100 characters")
	}
	return nil
}

func (s *EpisodeService) CreateEpisode(ctx context.Context, in CreateEpisodeInput) (*models.Episode, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	episode := &models.Episode{
		Title:         in.Title,
		Slug:          slug.Make(in.Title),
		Description:   in.Description,
		Duration:      in.Duration,
		PublishDate:   in.PublishDate,
		Tags:          in.Tags,
		EpisodeNumber: in.EpisodeNumber,
		YoutubeID:     in.YoutubeID,
		SpotifyID:     in.SpotifyID,
		YoutubeURL:    in.YoutubeURL,
		SpotifyURL:    in.SpotifyURL,
		ImagePath:     in.ImagePath,
	}
	if episode.PublishDate.IsZero() {
		episode.PublishDate = time.Now()
	}

	if err := s.episodeRepo.Create(ctx, episode); err != nil {
		return nil, err
	}
	return s.episodeRepo.GetByID(ctx, episode.ID)
}

// ListEpisodes returns a page of episodes, newest publish date first, along
// with the pagination envelope for the full collection.
func (s *EpisodeService) ListEpisodes(ctx context.Context, page, limit int) ([]models.Episode, models.Pagination, error) {
	total, err := s.episodeRepo.Count(ctx)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	offset := (page - 1) * limit
	episodes, err := s.episodeRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return episodes, models.NewPagination(page, limit, total), nil
}

func (s *EpisodeService) GetEpisodeBySlug(ctx context.Context, slugStr string) (*models.Episode, error) {
	return s.episodeRepo.GetBySlug(ctx, slugStr)
}

func (s *EpisodeService) GetEpisodeByID(ctx context.Context, id uint) (*models.Episode, error) {
	return s.episodeRepo.GetByID(ctx, id)
}

// UpdateEpisode applies the provided fields. The slug is regenerated only
// when the title actually changes, so existing links keep working across
// metadata-only edits.
func (s *EpisodeService) UpdateEpisode(ctx context.Context, in UpdateEpisodeInput) (*models.Episode, error) {
	episode, err := s.episodeRepo.GetByID(ctx, in.EpisodeID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != episode.Title {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
		episode.Title = *in.Title
		episode.Slug = slug.Make(*in.Title)
	}
	if in.Description != nil {
		episode.Description = *in.Description
	}
	if in.Duration != nil {
		episode.Duration = *in.Duration
	}
	if in.PublishDate != nil {
		episode.PublishDate = *in.PublishDate
	}
	if in.Tags != nil {
		episode.Tags = in.Tags
	}
	if in.EpisodeNumber != nil {
		episode.EpisodeNumber = *in.EpisodeNumber
	}
	if in.YoutubeID != nil {
		episode.YoutubeID = *in.YoutubeID
	}
	if in.SpotifyID != nil {
		episode.SpotifyID = *in.SpotifyID
	}
	if in.YoutubeURL != nil {
		episode.YoutubeURL = *in.YoutubeURL
	}
	if in.SpotifyURL != nil {
		episode.SpotifyURL = *in.SpotifyURL
	}
	if in.ImagePath != nil {
		episode.ImagePath = *in.ImagePath
	}

	if err := s.episodeRepo.Update(ctx, episode); err != nil {
		return nil, err
	}
	return s.episodeRepo.GetByID(ctx, episode.ID)
}

func (s *EpisodeService) DeleteEpisode(ctx context.Context, id uint) error {
	return s.episodeRepo.Delete(ctx, id)
}
