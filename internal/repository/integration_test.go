package repository

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"ripple/internal/cache"
	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// Connections are capped at one so every query sees the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db       *gorm.DB
	users    UserRepository
	posts    PostRepository
	comments CommentRepository
	follows  FollowRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	c := cache.NewWithClient(nil, slog.Default())
	return &fixture{
		db:       db,
		users:    NewUserRepository(db, c),
		posts:    NewPostRepository(db, c),
		comments: NewCommentRepository(db, c),
		follows:  NewFollowRepository(db, c),
	}
}

func (f *fixture) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed",
		Active:   true,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func (f *fixture) createPost(t *testing.T, author *models.User, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Content:        content,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}
	require.NoError(t, f.posts.Create(context.Background(), post))
	require.NoError(t, f.db.Model(&models.Post{}).Where("id = ?", post.ID).Update("created_at", createdAt).Error)
	return post
}

func TestFollowEdgeBacksBothViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	require.NoError(t, f.follows.Create(ctx, alice.ID, bob.ID))

	following, totalFollowing, err := f.follows.Following(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), totalFollowing)
	assert.Equal(t, "bob", following[0].Username)

	followers, totalFollowers, err := f.follows.Followers(ctx, bob.ID, 20, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), totalFollowers)
	assert.Equal(t, "alice", followers[0].Username)

	exists, err := f.follows.Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFollowCreateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	require.NoError(t, f.follows.Create(ctx, alice.ID, bob.ID))
	require.NoError(t, f.follows.Create(ctx, alice.ID, bob.ID))

	count, err := f.follows.CountFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFollowDeleteRemovesBothViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	require.NoError(t, f.follows.Create(ctx, alice.ID, bob.ID))
	require.NoError(t, f.follows.Delete(ctx, alice.ID, bob.ID))

	_, totalFollowing, err := f.follows.Following(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), totalFollowing)

	_, totalFollowers, err := f.follows.Followers(ctx, bob.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), totalFollowers)

	// Deleting an edge that no longer exists is a no-op.
	require.NoError(t, f.follows.Delete(ctx, alice.ID, bob.ID))
}

func TestFeedCompositionNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	base := time.Now().Add(-time.Hour)
	f.createPost(t, alice, "oldest", base)
	f.createPost(t, bob, "middle", base.Add(10*time.Minute))
	f.createPost(t, alice, "newest", base.Add(20*time.Minute))
	f.createPost(t, carol, "not in feed", base.Add(30*time.Minute))

	posts, total, err := f.posts.ListByAuthorIDs(ctx, []uint{alice.ID, bob.ID}, 20, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Content)
	assert.Equal(t, "middle", posts[1].Content)
	assert.Equal(t, "oldest", posts[2].Content)
}

func TestFeedEmptyAuthorList(t *testing.T) {
	f := newFixture(t)

	posts, total, err := f.posts.ListByAuthorIDs(context.Background(), nil, 20, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, posts)
}

func TestLikeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	post := f.createPost(t, alice, "hello", time.Now())

	require.NoError(t, f.posts.Like(ctx, alice.ID, post.ID))
	require.NoError(t, f.posts.Like(ctx, alice.ID, post.ID))

	count, err := f.posts.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, f.posts.Unlike(ctx, alice.ID, post.ID))
	count, err = f.posts.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Unliking a post that was never liked is a no-op.
	require.NoError(t, f.posts.Unlike(ctx, alice.ID, post.ID))
}

func TestGetByIDComputesCountsAndLikedFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	post := f.createPost(t, alice, "hello", time.Now())

	require.NoError(t, f.posts.Like(ctx, bob.ID, post.ID))
	require.NoError(t, f.comments.Create(ctx, &models.Comment{
		PublicID:       "c-1",
		PostID:         post.ID,
		AuthorID:       bob.ID,
		AuthorUsername: bob.Username,
		Content:        "nice",
	}))

	asBob, err := f.posts.GetByID(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, asBob.LikeCount)
	assert.Equal(t, 1, asBob.CommentCount)
	assert.True(t, asBob.Liked)

	asAlice, err := f.posts.GetByID(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, asAlice.Liked)

	anonymous, err := f.posts.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, anonymous.LikeCount)
	assert.False(t, anonymous.Liked)
}

func TestGetByIDNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.posts.GetByID(context.Background(), 404, 0)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestDeletePostCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	post := f.createPost(t, alice, "going away", time.Now())

	require.NoError(t, f.posts.Like(ctx, bob.ID, post.ID))
	require.NoError(t, f.comments.Create(ctx, &models.Comment{
		PublicID: "c-1", PostID: post.ID, AuthorID: bob.ID, AuthorUsername: "bob", Content: "bye",
	}))

	require.NoError(t, f.posts.Delete(ctx, post.ID))

	var likes, comments int64
	require.NoError(t, f.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	require.NoError(t, f.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	assert.Equal(t, int64(0), likes)
	assert.Equal(t, int64(0), comments)

	_, err := f.posts.GetByID(ctx, post.ID, 0)
	assert.Error(t, err)
}

func TestListPopularRequiresAtLeastOneLike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	liked := f.createPost(t, alice, "liked", time.Now().Add(-time.Minute))
	f.createPost(t, alice, "ignored", time.Now())
	require.NoError(t, f.posts.Like(ctx, bob.ID, liked.ID))

	posts, total, err := f.posts.ListPopular(ctx, 20, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "liked", posts[0].Content)
	assert.Equal(t, 1, posts[0].LikeCount)
}

func TestDeactivatedUsersDropOutOfFollowViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	require.NoError(t, f.follows.Create(ctx, alice.ID, bob.ID))
	require.NoError(t, f.follows.Create(ctx, alice.ID, carol.ID))
	require.NoError(t, f.follows.Create(ctx, bob.ID, alice.ID))

	require.NoError(t, f.users.Deactivate(ctx, bob.ID))

	ids, err := f.follows.FollowingIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{carol.ID}, ids)

	followers, total, err := f.follows.Followers(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, followers)

	count, err := f.follows.CountFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeactivateUnknownUser(t *testing.T) {
	f := newFixture(t)

	err := f.users.Deactivate(context.Background(), 404)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCreateUserDuplicateUsernameMapped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "alice")

	err := f.users.Create(ctx, &models.User{
		Username: "alice",
		Email:    "other@example.com",
		Password: "hashed",
		Active:   true,
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeAlreadyExists, appErr.Code)
}

func TestCommentsOldestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice")
	post := f.createPost(t, alice, "hello", time.Now())

	for i, content := range []string{"first", "second", "third"} {
		comment := &models.Comment{
			PublicID:       fmt.Sprintf("c-%d", i),
			PostID:         post.ID,
			AuthorID:       alice.ID,
			AuthorUsername: alice.Username,
			Content:        content,
		}
		require.NoError(t, f.comments.Create(ctx, comment))
	}

	comments, total, err := f.comments.ListByPost(ctx, post.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
}
