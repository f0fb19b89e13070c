package service

import (
	"context"
	"errors"
	"testing"

	"earshot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// episodeRepoStub is a stub for repository.EpisodeRepository.
type episodeRepoStub struct {
	createFn     func(context.Context, *models.Episode) error
	getByIDFn    func(context.Context, uint) (*models.Episode, error)
	getBySlugFn  func(context.Context, string) (*models.Episode, error)
	listFn       func(context.Context, int, int) ([]models.Episode, error)
	countFn      func(context.Context) (int64, error)
	updateFn     func(context.Context, *models.Episode) error
	deleteFn     func(context.Context, uint) error
	likeFn       func(context.Context, uint, uint) error
	unlikeFn     func(context.Context, uint, uint) error
	isLikedFn    func(context.Context, uint, uint) (bool, error)
	countLikesFn func(context.Context, uint) (int64, error)
}

func (s *episodeRepoStub) Create(ctx context.Context, e *models.Episode) error {
	return s.createFn(ctx, e)
}
func (s *episodeRepoStub) GetByID(ctx context.Context, id uint) (*models.Episode, error) {
	return s.getByIDFn(ctx, id)
}
func (s *episodeRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Episode, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *episodeRepoStub) List(ctx context.Context, limit, offset int) ([]models.Episode, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *episodeRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *episodeRepoStub) Update(ctx context.Context, e *models.Episode) error {
	return s.updateFn(ctx, e)
}
func (s *episodeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *episodeRepoStub) Like(ctx context.Context, userID, episodeID uint) error {
	return s.likeFn(ctx, userID, episodeID)
}
func (s *episodeRepoStub) Unlike(ctx context.Context, userID, episodeID uint) error {
	return s.unlikeFn(ctx, userID, episodeID)
}
func (s *episodeRepoStub) IsLiked(ctx context.Context, userID, episodeID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, episodeID)
}
func (s *episodeRepoStub) CountLikes(ctx context.Context, episodeID uint) (int64, error) {
	return s.countLikesFn(ctx, episodeID)
}

func noopEpisodeRepo() *episodeRepoStub {
	return &episodeRepoStub{
		createFn:  func(_ context.Context, _ *models.Episode) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Episode, error) { return &models.Episode{ID: id}, nil },
		getBySlugFn: func(_ context.Context, slug string) (*models.Episode, error) {
			return &models.Episode{Slug: slug}, nil
		},
		listFn:       func(_ context.Context, _, _ int) ([]models.Episode, error) { return nil, nil },
		countFn:      func(_ context.Context) (int64, error) { return 0, nil },
		updateFn:     func(_ context.Context, _ *models.Episode) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		likeFn:       func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:     func(_ context.Context, _, _ uint) error { return nil },
		isLikedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countLikesFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn            func(context.Context, *models.Comment) error
	getByIDFn           func(context.Context, uint) (*models.Comment, error)
	listByEpisodeFn     func(context.Context, uint, int, int) ([]models.Comment, error)
	countByEpisodeFn    func(context.Context, uint) (int64, error)
	listByUserFn        func(context.Context, uint) ([]models.Comment, error)
	deleteFn            func(context.Context, uint) error
	likeCommentFn       func(context.Context, uint, uint) error
	unlikeCommentFn     func(context.Context, uint, uint) error
	countCommentLikesFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByEpisode(ctx context.Context, episodeID uint, limit, offset int) ([]models.Comment, error) {
	return s.listByEpisodeFn(ctx, episodeID, limit, offset)
}
func (s *commentRepoStub) CountByEpisode(ctx context.Context, episodeID uint) (int64, error) {
	return s.countByEpisodeFn(ctx, episodeID)
}
func (s *commentRepoStub) ListByUserWithEpisode(ctx context.Context, userID uint) ([]models.Comment, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) LikeComment(ctx context.Context, userID, commentID uint) error {
	return s.likeCommentFn(ctx, userID, commentID)
}
func (s *commentRepoStub) UnlikeComment(ctx context.Context, userID, commentID uint) error {
	return s.unlikeCommentFn(ctx, userID, commentID)
}
func (s *commentRepoStub) CountCommentLikes(ctx context.Context, commentID uint) (int64, error) {
	return s.countCommentLikesFn(ctx, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:            func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:           func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByEpisodeFn:     func(_ context.Context, _ uint, _, _ int) ([]models.Comment, error) { return nil, nil },
		countByEpisodeFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		listByUserFn:        func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
		likeCommentFn:       func(_ context.Context, _, _ uint) error { return nil },
		unlikeCommentFn:     func(_ context.Context, _, _ uint) error { return nil },
		countCommentLikesFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	getFavoriteEpisodesFn func(context.Context, uint) ([]models.Episode, error)
	getFavoriteBooksFn    func(context.Context, uint) ([]models.Book, error)
	isBookFavoritedFn     func(context.Context, uint, uint) (bool, error)
	addFavoriteBookFn     func(context.Context, uint, uint) error
	removeFavoriteBookFn  func(context.Context, uint, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) GetFavoriteEpisodes(ctx context.Context, userID uint) ([]models.Episode, error) {
	return s.getFavoriteEpisodesFn(ctx, userID)
}
func (s *userRepoStub) GetFavoriteBooks(ctx context.Context, userID uint) ([]models.Book, error) {
	return s.getFavoriteBooksFn(ctx, userID)
}
func (s *userRepoStub) IsBookFavorited(ctx context.Context, userID, bookID uint) (bool, error) {
	return s.isBookFavoritedFn(ctx, userID, bookID)
}
func (s *userRepoStub) AddFavoriteBook(ctx context.Context, userID, bookID uint) error {
	return s.addFavoriteBookFn(ctx, userID, bookID)
}
func (s *userRepoStub) RemoveFavoriteBook(ctx context.Context, userID, bookID uint) error {
	return s.removeFavoriteBookFn(ctx, userID, bookID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:             func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:          func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:       func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:              func(_ context.Context, _ *models.User) error { return nil },
		updateFn:              func(_ context.Context, _ *models.User) error { return nil },
		getFavoriteEpisodesFn: func(_ context.Context, _ uint) ([]models.Episode, error) { return nil, nil },
		getFavoriteBooksFn:    func(_ context.Context, _ uint) ([]models.Book, error) { return nil, nil },
		isBookFavoritedFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		addFavoriteBookFn:     func(_ context.Context, _, _ uint) error { return nil },
		removeFavoriteBookFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

// bookRepoStub is a stub for repository.BookRepository.
type bookRepoStub struct {
	createFn  func(context.Context, *models.Book) error
	getByIDFn func(context.Context, uint) (*models.Book, error)
	listFn    func(context.Context) ([]models.Book, error)
}

func (s *bookRepoStub) Create(ctx context.Context, b *models.Book) error {
	return s.createFn(ctx, b)
}
func (s *bookRepoStub) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	return s.getByIDFn(ctx, id)
}
func (s *bookRepoStub) List(ctx context.Context) ([]models.Book, error) {
	return s.listFn(ctx)
}

func noopBookRepo() *bookRepoStub {
	return &bookRepoStub{
		createFn:  func(_ context.Context, _ *models.Book) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Book, error) { return &models.Book{ID: id}, nil },
		listFn:    func(_ context.Context) ([]models.Book, error) { return nil, nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
