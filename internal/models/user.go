// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the Ripple application.
// Deactivated accounts keep their row; Active is flipped to false instead of
// deleting, so old posts and follow edges stay resolvable.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Posts       []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
