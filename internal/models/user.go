// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Earshot application.
// FavoriteEpisodes and FavoriteBooks are the user's favorites sets; the
// episode set is kept in sync with the likes table by the like service.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Email          string         `gorm:"unique;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	IsAdmin        bool           `gorm:"default:false" json:"is_admin"`
	ProfilePicture string         `json:"profile_picture"`
	Bio            string         `json:"bio"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	FavoriteEpisodes []Episode `gorm:"many2many:user_favorite_episodes" json:"favorite_episodes,omitempty"`
	FavoriteBooks    []Book    `gorm:"many2many:user_favorite_books" json:"favorite_books,omitempty"`
}

// PublicProfile returns the fields safe to expose to any caller.
func (u *User) PublicProfile() map[string]any {
	return map[string]any{
		"id":              u.ID,
		"username":        u.Username,
		"email":           u.Email,
		"is_admin":        u.IsAdmin,
		"profile_picture": u.ProfilePicture,
		"bio":             u.Bio,
		"created_at":      u.CreatedAt,
		"updated_at":      u.UpdatedAt,
	}
}
