// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a post. Pinned is an independent per-comment
// toggle: several comments under the same post may be pinned at once.
type Comment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PostID    uint   `gorm:"not null;index" json:"post_id"`
	UserID    uint   `gorm:"not null" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user"`
	Content   string `gorm:"type:text;not null" json:"content"`
	LikeCount int    `gorm:"not null;default:0" json:"like_count"`
	Pinned    bool   `gorm:"not null;default:false" json:"pinned"`
	// Liked is not persisted; computed at query time for the requesting user
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
