// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Like records that a user likes a post. The (UserID, PostID) pair is unique;
// the row is only ever created or deleted, never updated. The unique index is
// the backstop that turns a racing double-toggle into a detectable conflict
// instead of a duplicate like.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike records that a user likes a comment. Same semantics as Like,
// scoped to a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}
