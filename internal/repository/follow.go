package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines persistence operations for follow edges. A single
// edge row backs both the follower's "following" view and the followee's
// "followers" view, so the two sides can never drift apart.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID uint) error
	Delete(ctx context.Context, followerID, followeeID uint) error
	Exists(ctx context.Context, followerID, followeeID uint) (bool, error)
	Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error)
	Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
}

type followRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB, c *cache.Cache) FollowRepository {
	return &followRepository{db: db, cache: c}
}

// Create inserts the follow edge; following someone already followed is a
// no-op thanks to the compound unique index.
func (r *followRepository) Create(ctx context.Context, followerID, followeeID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followee_id"}},
			DoNothing: true,
		}).
		Create(&models.Follow{FollowerID: followerID, FolloweeID: followeeID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	r.cache.InvalidateFeeds(ctx)
	return nil
}

// Delete removes the follow edge. Unfollowing someone not followed is a no-op.
func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) error {
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	r.cache.InvalidateFeeds(ctx)
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Followers lists active users following userID. Deactivated accounts are
// skipped while resolving edges, so totals reflect the resolved set.
func (r *followRepository) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.User{}).
			Joins("JOIN follows ON follows.follower_id = users.id").
			Where("follows.followee_id = ? AND users.active = ?", userID, true)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	err := base().
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

// Following lists active users that userID follows.
func (r *followRepository) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.User{}).
			Joins("JOIN follows ON follows.followee_id = users.id").
			Where("follows.follower_id = ? AND users.active = ?", userID, true)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	err := base().
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

// FollowingIDs returns the ids of every active user that userID follows,
// used to assemble the personal feed.
func (r *followRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Joins("JOIN users ON users.id = follows.followee_id").
		Where("follows.follower_id = ? AND users.active = ?", userID, true).
		Pluck("follows.followee_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ? AND users.active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ? AND users.active = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
