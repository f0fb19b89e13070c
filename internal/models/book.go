package models

import (
	"time"

	"gorm.io/gorm"
)

// Book represents a book mentioned on the show.
type Book struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Title             string         `gorm:"not null" json:"title"`
	Author            string         `gorm:"not null" json:"author"`
	CoverImagePath    string         `json:"cover_image_path"`
	FeaturedEpisodeID *uint          `gorm:"index" json:"featured_episode_id,omitempty"`
	FeaturedEpisode   *Episode       `gorm:"foreignKey:FeaturedEpisodeID" json:"featured_episode,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
