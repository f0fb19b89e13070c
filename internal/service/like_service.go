package service

import (
	"context"

	"earshot/internal/repository"
)

// LikeService coordinates episode likes. A like also places the episode in
// the user's favorites; an unlike removes it. Both directions are idempotent.
type LikeService struct {
	episodeRepo repository.EpisodeRepository
}

func NewLikeService(episodeRepo repository.EpisodeRepository) *LikeService {
	return &LikeService{episodeRepo: episodeRepo}
}

// LikeEpisode records the like and returns the episode's updated like count.
func (s *LikeService) LikeEpisode(ctx context.Context, userID, episodeID uint) (int64, error) {
	if _, err := s.episodeRepo.GetByID(ctx, episodeID); err != nil {
		return 0, err
	}
	if err := s.episodeRepo.Like(ctx, userID, episodeID); err != nil {
		return 0, err
	}
	return s.episodeRepo.CountLikes(ctx, episodeID)
}

// UnlikeEpisode removes the like and returns the episode's updated like count.
func (s *LikeService) UnlikeEpisode(ctx context.Context, userID, episodeID uint) (int64, error) {
	if _, err := s.episodeRepo.GetByID(ctx, episodeID); err != nil {
		return 0, err
	}
	if err := s.episodeRepo.Unlike(ctx, userID, episodeID); err != nil {
		return 0, err
	}
	return s.episodeRepo.CountLikes(ctx, episodeID)
}

// IsLiked reports whether the user currently likes the episode.
func (s *LikeService) IsLiked(ctx context.Context, userID, episodeID uint) (bool, error) {
	return s.episodeRepo.IsLiked(ctx, userID, episodeID)
}
