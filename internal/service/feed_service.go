package service

import (
	"context"
	"time"

	"ripple/internal/cache"
	"ripple/internal/featureflags"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// FeedService assembles reverse-chronological timelines. Feeds are computed
// at read time from the follow graph; nothing is fanned out on write.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	cache      *cache.Cache
	flags      *featureflags.Manager
}

func NewFeedService(
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	c *cache.Cache,
	flags *featureflags.Manager,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
		cache:      c,
		flags:      flags,
	}
}

// GetPersonalFeed returns posts by the user and everyone they follow, newest
// first. The cache key includes the user id, so one user's feed is never
// served to another.
func (s *FeedService) GetPersonalFeed(ctx context.Context, userID uint, page, size int) (models.Page[*models.Post], error) {
	start := time.Now()
	defer func() {
		observability.FeedAssemblyLatency.WithLabelValues("personal").Observe(time.Since(start).Seconds())
	}()

	var result models.Page[*models.Post]
	key := cache.PersonalFeedKey(userID, page, size)

	err := s.cache.Aside(ctx, key, &result, cache.FeedTTL, func() error {
		ids, err := s.followRepo.FollowingIDs(ctx, userID)
		if err != nil {
			return err
		}
		ids = append(ids, userID)

		posts, total, err := s.postRepo.ListByAuthorIDs(ctx, ids, size, page*size, userID)
		if err != nil {
			return err
		}
		result = models.NewPage(posts, page, size, total)
		return nil
	})
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	return result, nil
}

// GetUserFeed returns one user's posts, newest first. Only anonymous reads
// are cached; authenticated reads carry a per-viewer liked flag.
func (s *FeedService) GetUserFeed(ctx context.Context, username string, page, size int, currentUserID uint) (models.Page[*models.Post], error) {
	start := time.Now()
	defer func() {
		observability.FeedAssemblyLatency.WithLabelValues("user").Observe(time.Since(start).Seconds())
	}()

	var result models.Page[*models.Post]

	fetch := func() error {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if user == nil || !user.Active {
			return models.NewNotFoundError("User", username)
		}

		posts, total, err := s.postRepo.ListByAuthorIDs(ctx, []uint{user.ID}, size, page*size, currentUserID)
		if err != nil {
			return err
		}
		result = models.NewPage(posts, page, size, total)
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = s.cache.Aside(ctx, cache.UserFeedKey(username, page, size), &result, cache.FeedTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	return result, nil
}

// GetDiscoveryFeed returns posts with at least one like across all users,
// newest first. Gated behind the discovery_feed feature flag.
func (s *FeedService) GetDiscoveryFeed(ctx context.Context, page, size int, currentUserID uint) (models.Page[*models.Post], error) {
	if !s.flags.Enabled(featureflags.DiscoveryFeed, currentUserID) {
		return models.Page[*models.Post]{}, models.NewForbiddenError("Discovery feed is not available")
	}

	start := time.Now()
	defer func() {
		observability.FeedAssemblyLatency.WithLabelValues("discover").Observe(time.Since(start).Seconds())
	}()

	var result models.Page[*models.Post]

	fetch := func() error {
		posts, total, err := s.postRepo.ListPopular(ctx, size, page*size, currentUserID)
		if err != nil {
			return err
		}
		result = models.NewPage(posts, page, size, total)
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = s.cache.Aside(ctx, cache.DiscoveryFeedKey(page, size), &result, cache.FeedTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	return result, nil
}
