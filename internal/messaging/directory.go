package messaging

import (
	"context"
	"errors"

	"github.com/1Kunalvats9/chatx/internal/models"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned by UserDirectory implementations when no
// profile exists for the requested identity.
var ErrUserNotFound = errors.New("user not found")

// UserDirectory resolves user identities and exposes the follow graph.
// Profiles and follow edges are owned elsewhere; messaging only reads them.
type UserDirectory interface {
	Lookup(ctx context.Context, id string) (*models.User, error)
	LookupByUsername(ctx context.Context, username string) (*models.User, error)
	// Follows reports whether follower currently follows followee. The
	// result must reflect the live graph; callers must not cache it.
	Follows(ctx context.Context, followerID, followeeID string) (bool, error)
}

// GormDirectory reads users and follow edges from the primary database.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) Lookup(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *GormDirectory) LookupByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (d *GormDirectory) Follows(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
