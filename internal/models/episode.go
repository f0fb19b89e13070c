package models

import (
	"time"

	"gorm.io/gorm"
)

// Episode represents a podcast episode.
// Slug is unique and derived from the title; the episode service regenerates
// it only when the title changes.
type Episode struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	ImagePath     string         `json:"image_path"`
	Duration      float64        `json:"duration"`
	Description   string         `gorm:"type:text" json:"description"`
	PublishDate   time.Time      `gorm:"index" json:"publish_date"`
	Tags          []string       `gorm:"serializer:json" json:"tags"`
	EpisodeNumber int            `json:"episode_number,omitempty"`
	YoutubeID     string         `json:"youtube_id,omitempty"`
	SpotifyID     string         `json:"spotify_id,omitempty"`
	YoutubeURL    string         `json:"youtube_url,omitempty"`
	SpotifyURL    string         `json:"spotify_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	MentionedBooks []Book `gorm:"many2many:episode_books" json:"mentioned_books,omitempty"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
}

// Pagination describes a page of results in API responses.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
}

// NewPagination computes page metadata for a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalCount:  total,
	}
}
