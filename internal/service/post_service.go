package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"github.com/google/uuid"
)

// PostService handles posts, likes, and comments.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

type CreatePostInput struct {
	AuthorID uint
	Content  string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

type AddCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

// LikeResult is the outcome of a like or unlike operation.
type LikeResult struct {
	PostID    uint  `json:"post_id"`
	LikeCount int64 `json:"like_count"`
	Liked     bool  `json:"liked"`
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// CreatePost stores a new post, stamping the author's username at creation
// time. The stamp is not updated if the author later changes their username.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Content:        in.Content,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.AuthorID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// UpdatePost replaces the post's content. Only the author may update.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post along with its likes and comments. Only the
// author may delete.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.AuthorID != in.UserID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

// LikePost records a like. Liking an already-liked post is a no-op; the
// result always reflects the post's current state.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return nil, err
	}

	count, err := s.postRepo.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{PostID: postID, LikeCount: count, Liked: true}, nil
}

// UnlikePost removes a like. Unliking a post that was never liked is a no-op.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return nil, err
	}

	count, err := s.postRepo.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{PostID: postID, LikeCount: count, Liked: false}, nil
}

// AddComment appends a comment to a post and returns the updated post.
// Comments are immutable once written.
func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) (*models.Post, error) {
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PublicID:       uuid.NewString(),
		PostID:         in.PostID,
		Content:        in.Content,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

// GetComments lists a post's comments oldest first.
func (s *PostService) GetComments(ctx context.Context, postID uint, page, size int) (models.Page[models.Comment], error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return models.Page[models.Comment]{}, err
	}

	comments, total, err := s.commentRepo.ListByPost(ctx, postID, size, page*size)
	if err != nil {
		return models.Page[models.Comment]{}, err
	}
	return models.NewPage(comments, page, size, total), nil
}
