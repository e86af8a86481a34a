// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxPostContentLen is the upper bound on post content length in bytes.
const MaxPostContentLen = 5000

// Post represents a feed post. LikeCount and CommentCount are denormalized
// counters: they are mutated in the same database transaction as the
// corresponding like/comment row, never as a separate step.
type Post struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	UserID       uint     `gorm:"not null;index" json:"user_id"`
	User         User     `gorm:"foreignKey:UserID" json:"user"`
	Content      string   `gorm:"type:text;not null" json:"content"`
	Attachments  []string `gorm:"serializer:json" json:"attachments,omitempty"`
	LikeCount    int      `gorm:"not null;default:0" json:"like_count"`
	CommentCount int      `gorm:"not null;default:0" json:"comment_count"`
	// Liked is not persisted; computed at query time for the requesting user
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
