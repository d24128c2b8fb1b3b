package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache buckets. Every key belongs to exactly one bucket so writes can evict
// coarsely by prefix.
const (
	UserBucket = "user"
	PostBucket = "post"
	FeedBucket = "feed"
)

const (
	UserTTL = 5 * time.Minute
	PostTTL = 10 * time.Minute
	FeedTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf("%s:id:%d", UserBucket, userID)
}

func UsernameKey(username string) string {
	return fmt.Sprintf("%s:name:%s", UserBucket, username)
}

func PostKey(postID uint) string {
	return fmt.Sprintf("%s:id:%d", PostBucket, postID)
}

func PersonalFeedKey(userID uint, page, size int) string {
	return fmt.Sprintf("%s:personal:%d:%d:%d", FeedBucket, userID, page, size)
}

func UserFeedKey(username string, page, size int) string {
	return fmt.Sprintf("%s:user:%s:%d:%d", FeedBucket, username, page, size)
}

func DiscoveryFeedKey(page, size int) string {
	return fmt.Sprintf("%s:discover:%d:%d", FeedBucket, page, size)
}

// InvalidateUsers evicts all cached user lookups.
func (c *Cache) InvalidateUsers(ctx context.Context) {
	c.InvalidateBucket(ctx, UserBucket)
}

// InvalidatePosts evicts all cached post lookups.
func (c *Cache) InvalidatePosts(ctx context.Context) {
	c.InvalidateBucket(ctx, PostBucket)
}

// InvalidateFeeds evicts all cached feeds.
func (c *Cache) InvalidateFeeds(ctx context.Context) {
	c.InvalidateBucket(ctx, FeedBucket)
}
