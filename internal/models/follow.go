// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Follow is a directed follow edge: FollowerID follows FolloweeID.
// Both the follower's "following" view and the followee's "followers" view
// read the same edge row, so the two sides can never disagree. The compound
// unique index prevents duplicate edges.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follows_pair;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follows_pair;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee *User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
