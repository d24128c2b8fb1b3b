// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a post in the Ripple application.
// AuthorUsername is denormalized at creation time and is intentionally not
// kept in sync with later username changes.
type Post struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Content        string `gorm:"type:text;not null" json:"content"`
	AuthorID       uint   `gorm:"not null;index" json:"author_id"`
	AuthorUsername string `gorm:"not null" json:"author_username"`
	Author         *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"like_count"`
	// CommentCount is not persisted; computed at query time
	CommentCount int `gorm:"->" json:"comment_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
