package service

import (
	"context"

	"earshot/internal/models"
	"earshot/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	episodeRepo repository.EpisodeRepository
	isAdmin     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID    uint
	EpisodeID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	episodeRepo repository.EpisodeRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		episodeRepo: episodeRepo,
		isAdmin:     isAdmin,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const maxCommentLen = 1000

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	if _, err := s.episodeRepo.GetByID(ctx, in.EpisodeID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:   in.Content,
		UserID:    in.UserID,
		EpisodeID: in.EpisodeID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a page of an episode's comments, newest first, with
// the pagination envelope.
func (s *CommentService) ListComments(ctx context.Context, episodeID uint, page, limit int) ([]models.Comment, models.Pagination, error) {
	if _, err := s.episodeRepo.GetByID(ctx, episodeID); err != nil {
		return nil, models.Pagination{}, err
	}

	total, err := s.commentRepo.CountByEpisode(ctx, episodeID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	offset := (page - 1) * limit
	comments, err := s.commentRepo.ListByEpisode(ctx, episodeID, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return comments, models.NewPagination(page, limit, total), nil
}

// DeleteComment removes a comment. Non-authors get the same 404 as a
// missing comment so the endpoint does not reveal which IDs exist; admins
// may delete anything.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if comment.UserID != in.UserID {
		admin := false
		if s.isAdmin != nil {
			admin, err = s.isAdmin(ctx, in.UserID)
			if err != nil {
				return err
			}
		}
		if !admin {
			return models.NewNotFoundError("Comment", in.CommentID)
		}
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}

// GetUserCommentActivity returns every comment the user has written, each
// carrying the episode title and current like count.
func (s *CommentService) GetUserCommentActivity(ctx context.Context, userID uint) ([]models.Comment, error) {
	return s.commentRepo.ListByUserWithEpisode(ctx, userID)
}

// LikeComment records a like on a comment and returns the updated count.
// Liking twice is a no-op.
func (s *CommentService) LikeComment(ctx context.Context, userID, commentID uint) (int64, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return 0, err
	}
	if err := s.commentRepo.LikeComment(ctx, userID, commentID); err != nil {
		return 0, err
	}
	return s.commentRepo.CountCommentLikes(ctx, commentID)
}

// UnlikeComment removes the user's like, if any, and returns the updated count.
func (s *CommentService) UnlikeComment(ctx context.Context, userID, commentID uint) (int64, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return 0, err
	}
	if err := s.commentRepo.UnlikeComment(ctx, userID, commentID); err != nil {
		return 0, err
	}
	return s.commentRepo.CountCommentLikes(ctx, commentID)
}
