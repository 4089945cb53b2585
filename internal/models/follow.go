package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFollow represents a directed follower/followee relationship.
// Messaging access is gated on this edge: A may message B only while
// a (follower=A, followee=B) row exists.
type UserFollow struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	FollowerID string `gorm:"uniqueIndex:idx_follower_followee;index" json:"followerId"`
	Follower   User   `gorm:"foreignKey:FollowerID" json:"-"`

	FolloweeID string `gorm:"uniqueIndex:idx_follower_followee;index" json:"followeeId"`
	Followee   User   `gorm:"foreignKey:FolloweeID" json:"-"`
}

func (uf *UserFollow) BeforeCreate(tx *gorm.DB) (err error) {
	if uf.ID == "" {
		uf.ID = uuid.New().String()
	}
	return
}
