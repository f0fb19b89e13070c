package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on an episode.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"size:1000;not null" json:"content"`
	EpisodeID uint           `gorm:"not null;index" json:"episode_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Episode   Episode        `gorm:"foreignKey:EpisodeID" json:"episode,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"like_count"`
	// EpisodeTitle is filled by the profile aggregation query
	EpisodeTitle string `gorm:"->" json:"episode_title,omitempty"`
}
