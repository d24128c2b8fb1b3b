// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on a post. Comments are append-only: once
// created they are never edited or deleted, so there is no UpdatedAt.
// PublicID is generated independently of the row id.
type Comment struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	PublicID       string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"id"`
	PostID         uint      `gorm:"not null;index" json:"post_id"`
	Content        string    `gorm:"not null" json:"content"`
	AuthorID       uint      `gorm:"not null" json:"author_id"`
	AuthorUsername string    `gorm:"not null" json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}
