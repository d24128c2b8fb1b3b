package service

import (
	"context"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostStampsAuthorUsername(t *testing.T) {
	t.Parallel()
	userRepo := &userRepoStub{
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Active: true}, nil
		},
	}
	var created *models.Post
	postRepo := &postRepoStub{
		createFn: func(ctx context.Context, post *models.Post) error {
			post.ID = 42
			created = post
			return nil
		},
		getByIDFn: func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
			return created, nil
		},
	}
	svc := NewPostService(postRepo, &commentRepoStub{}, userRepo)

	post, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 1, Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "alice", post.AuthorUsername)
	assert.Equal(t, uint(1), post.AuthorID)
}

func TestCreatePostInvalidContent(t *testing.T) {
	t.Parallel()
	svc := NewPostService(&postRepoStub{}, &commentRepoStub{}, &userRepoStub{})

	_, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 1, Content: ""})
	assertErrorCode(t, err, models.CodeValidation)

	_, err = svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 1, Content: strings.Repeat("x", 5001)})
	assertErrorCode(t, err, models.CodeValidation)
}

func TestUpdatePostNotAuthor(t *testing.T) {
	t.Parallel()
	postRepo := &postRepoStub{
		getByIDFn: func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 99, Content: "original"}, nil
		},
	}
	svc := NewPostService(postRepo, &commentRepoStub{}, &userRepoStub{})

	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 7, Content: "hacked"})
	assertErrorCode(t, err, models.CodeForbidden)
}

func TestDeletePostNotAuthor(t *testing.T) {
	t.Parallel()
	postRepo := &postRepoStub{
		getByIDFn: func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 99}, nil
		},
	}
	svc := NewPostService(postRepo, &commentRepoStub{}, &userRepoStub{})

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 7})
	assertErrorCode(t, err, models.CodeForbidden)
}

func TestUpdatePostByAuthor(t *testing.T) {
	t.Parallel()
	var updated *models.Post
	postRepo := &postRepoStub{
		getByIDFn: func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 1, Content: "original"}, nil
		},
		updateFn: func(ctx context.Context, post *models.Post) error {
			updated = post
			return nil
		},
	}
	svc := NewPostService(postRepo, &commentRepoStub{}, &userRepoStub{})

	post, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 7, Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", post.Content)
	require.NotNil(t, updated)
	assert.Equal(t, "edited", updated.Content)
}

func TestLikePostResult(t *testing.T) {
	t.Parallel()
	postRepo := &postRepoStub{
		getByIDFn: func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 2}, nil
		},
		likeCountFn: func(ctx context.Context, postID uint) (int64, error) {
			return 3, nil
		},
	}
	svc := NewPostService(postRepo, &commentRepoStub{}, &userRepoStub{})

	result, err := svc.LikePost(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), result.PostID)
	assert.Equal(t, int64(3), result.LikeCount)
	assert.True(t, result.Liked)
}

func TestLikeUnknownPost(t *testing.T) {
	t.Parallel()
	svc := NewPostService(&postRepoStub{}, &commentRepoStub{}, &userRepoStub{})

	_, err := svc.LikePost(context.Background(), 1, 404)
	assertErrorCode(t, err, models.CodeNotFound)
}

func TestUnlikePostResult(t *testing.T) {
	t.Parallel()
	postRepo := &postRepoStub{
		getByIDFn: func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 2}, nil
		},
		likeCountFn: func(ctx context.Context, postID uint) (int64, error) {
			return 0, nil
		},
	}
	svc := NewPostService(postRepo, &commentRepoStub{}, &userRepoStub{})

	result, err := svc.UnlikePost(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.LikeCount)
	assert.False(t, result.Liked)
}

func TestAddCommentStampsIdentity(t *testing.T) {
	t.Parallel()
	userRepo := &userRepoStub{
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "bob", Active: true}, nil
		},
	}
	postRepo := &postRepoStub{
		getByIDFn: func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 1}, nil
		},
	}
	var created *models.Comment
	commentRepo := &commentRepoStub{
		createFn: func(ctx context.Context, comment *models.Comment) error {
			comment.ID = 1
			created = comment
			return nil
		},
	}
	svc := NewPostService(postRepo, commentRepo, userRepo)

	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 3, PostID: 7, Content: "nice"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "bob", created.AuthorUsername)
	assert.Equal(t, uint(7), created.PostID)

	_, err = uuid.Parse(created.PublicID)
	assert.NoError(t, err, "comment public id must be a UUID")
}

func TestAddCommentInvalidContent(t *testing.T) {
	t.Parallel()
	svc := NewPostService(&postRepoStub{}, &commentRepoStub{}, &userRepoStub{})

	_, err := svc.AddComment(context.Background(), AddCommentInput{UserID: 1, PostID: 7, Content: ""})
	assertErrorCode(t, err, models.CodeValidation)
}

func TestGetCommentsPage(t *testing.T) {
	t.Parallel()
	postRepo := &postRepoStub{
		getByIDFn: func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
	}
	commentRepo := &commentRepoStub{
		listByPostFn: func(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error) {
			return []models.Comment{{PublicID: "a"}, {PublicID: "b"}}, 2, nil
		},
	}
	svc := NewPostService(postRepo, commentRepo, &userRepoStub{})

	page, err := svc.GetComments(context.Background(), 7, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, len(page.Content))
	assert.Equal(t, int64(2), page.TotalElements)
}
