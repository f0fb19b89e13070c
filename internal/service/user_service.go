package service

import (
	"context"

	"earshot/internal/models"
	"earshot/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	bookRepo repository.BookRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Bio      string
}

func NewUserService(userRepo repository.UserRepository, bookRepo repository.BookRepository) *UserService {
	return &UserService{userRepo: userRepo, bookRepo: bookRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxUsernameLen = 30

	if in.Username != "" {
		if len(in.Username) > maxUsernameLen {
			return nil, models.NewValidationError("Username too long (max 30 characters)")
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetProfilePicture stores the served path of an uploaded profile image.
func (s *UserService) SetProfilePicture(ctx context.Context, userID uint, path string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = path
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetFavoriteEpisodes(ctx context.Context, userID uint) ([]models.Episode, error) {
	return s.userRepo.GetFavoriteEpisodes(ctx, userID)
}

func (s *UserService) GetFavoriteBooks(ctx context.Context, userID uint) ([]models.Book, error) {
	return s.userRepo.GetFavoriteBooks(ctx, userID)
}

// AddFavoriteBook adds a book to the user's favorites. Re-adding an already
// favorited book is rejected so the client can surface the state mismatch.
func (s *UserService) AddFavoriteBook(ctx context.Context, userID, bookID uint) error {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return err
	}

	favorited, err := s.userRepo.IsBookFavorited(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if favorited {
		return models.NewValidationError("Book is already in favorites")
	}

	return s.userRepo.AddFavoriteBook(ctx, userID, bookID)
}

// RemoveFavoriteBook removes a book from the user's favorites, rejecting the
// call when the book is not favorited.
func (s *UserService) RemoveFavoriteBook(ctx context.Context, userID, bookID uint) error {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return err
	}

	favorited, err := s.userRepo.IsBookFavorited(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if !favorited {
		return models.NewValidationError("Book is not in favorites")
	}

	return s.userRepo.RemoveFavoriteBook(ctx, userID, bookID)
}
