// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"earshot/internal/cache"
	"earshot/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users, including the
// favorite-books set stored in the user_favorite_books join table.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	GetFavoriteEpisodes(ctx context.Context, userID uint) ([]models.Episode, error)
	GetFavoriteBooks(ctx context.Context, userID uint) ([]models.Book, error)
	IsBookFavorited(ctx context.Context, userID, bookID uint) (bool, error)
	AddFavoriteBook(ctx context.Context, userID, bookID uint) error
	RemoveFavoriteBook(ctx context.Context, userID, bookID uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// userCacheEntry carries the password hash through the cache round trip.
// The json:"-" on models.User.Password keeps the hash out of API responses,
// but it would also strip it from the cached JSON, and callers that save the
// struct back would then blank the stored hash.
type userCacheEntry struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var entry userCacheEntry
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &entry, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&entry.User, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		entry.PasswordHash = entry.User.Password
		return nil
	})

	if err != nil {
		return nil, err
	}
	entry.User.Password = entry.PasswordHash
	return &entry.User, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already in use")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite phrasing for tests
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already in use")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) GetFavoriteEpisodes(ctx context.Context, userID uint) ([]models.Episode, error) {
	user := models.User{ID: userID}
	var episodes []models.Episode
	err := r.db.WithContext(ctx).Model(&user).
		Order("publish_date DESC").
		Association("FavoriteEpisodes").
		Find(&episodes)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return episodes, nil
}

func (r *userRepository) GetFavoriteBooks(ctx context.Context, userID uint) ([]models.Book, error) {
	user := models.User{ID: userID}
	var books []models.Book
	err := r.db.WithContext(ctx).Model(&user).
		Association("FavoriteBooks").
		Find(&books)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return books, nil
}

func (r *userRepository) IsBookFavorited(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_favorite_books").
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) AddFavoriteBook(ctx context.Context, userID, bookID uint) error {
	// Set semantics: a second add is a no-op at the storage level.
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO user_favorite_books (user_id, book_id)
		 VALUES (?, ?)
		 ON CONFLICT DO NOTHING`,
		userID, bookID,
	).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *userRepository) RemoveFavoriteBook(ctx context.Context, userID, bookID uint) error {
	err := r.db.WithContext(ctx).Exec(
		`DELETE FROM user_favorite_books WHERE user_id = ? AND book_id = ?`,
		userID, bookID,
	).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}
