package service

import (
	"context"

	"ripple/internal/models"
)

// Func-field stubs for the repository interfaces. Tests set only the
// functions they care about; unset functions return zero values.

type userRepoStub struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFn        func(ctx context.Context, user *models.User) error
	deactivateFn    func(ctx context.Context, id uint) error
	listFn          func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, models.NewNotFoundError("User", id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) Deactivate(ctx context.Context, id uint) error {
	if s.deactivateFn != nil {
		return s.deactivateFn(ctx, id)
	}
	return nil
}

func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, nil
}

type followRepoStub struct {
	createFn         func(ctx context.Context, followerID, followeeID uint) error
	deleteFn         func(ctx context.Context, followerID, followeeID uint) error
	existsFn         func(ctx context.Context, followerID, followeeID uint) (bool, error)
	followersFn      func(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error)
	followingFn      func(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error)
	followingIDsFn   func(ctx context.Context, userID uint) ([]uint, error)
	countFollowersFn func(ctx context.Context, userID uint) (int64, error)
	countFollowingFn func(ctx context.Context, userID uint) (int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followeeID uint) error {
	if s.createFn != nil {
		return s.createFn(ctx, followerID, followeeID)
	}
	return nil
}

func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, followerID, followeeID)
	}
	return nil
}

func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(ctx, followerID, followeeID)
	}
	return false, nil
}

func (s *followRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	if s.followersFn != nil {
		return s.followersFn(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

func (s *followRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	if s.followingFn != nil {
		return s.followingFn(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.followingIDsFn != nil {
		return s.followingIDsFn(ctx, userID)
	}
	return nil, nil
}

func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	if s.countFollowersFn != nil {
		return s.countFollowersFn(ctx, userID)
	}
	return 0, nil
}

func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	if s.countFollowingFn != nil {
		return s.countFollowingFn(ctx, userID)
	}
	return 0, nil
}

type postRepoStub struct {
	createFn          func(ctx context.Context, post *models.Post) error
	getByIDFn         func(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	listByAuthorIDsFn func(ctx context.Context, authorIDs []uint, limit, offset int, currentUserID uint) ([]*models.Post, int64, error)
	listPopularFn     func(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, int64, error)
	updateFn          func(ctx context.Context, post *models.Post) error
	deleteFn          func(ctx context.Context, id uint) error
	isLikedFn         func(ctx context.Context, userID, postID uint) (bool, error)
	likeFn            func(ctx context.Context, userID, postID uint) error
	unlikeFn          func(ctx context.Context, userID, postID uint) error
	likeCountFn       func(ctx context.Context, postID uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	post.ID = 1
	return nil
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id, currentUserID)
	}
	return nil, models.NewNotFoundError("Post", id)
}

func (s *postRepoStub) ListByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	if s.listByAuthorIDsFn != nil {
		return s.listByAuthorIDsFn(ctx, authorIDs, limit, offset, currentUserID)
	}
	return nil, 0, nil
}

func (s *postRepoStub) ListPopular(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	if s.listPopularFn != nil {
		return s.listPopularFn(ctx, limit, offset, currentUserID)
	}
	return nil, 0, nil
}

func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, post)
	}
	return nil
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isLikedFn != nil {
		return s.isLikedFn(ctx, userID, postID)
	}
	return false, nil
}

func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	if s.likeFn != nil {
		return s.likeFn(ctx, userID, postID)
	}
	return nil
}

func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	if s.unlikeFn != nil {
		return s.unlikeFn(ctx, userID, postID)
	}
	return nil
}

func (s *postRepoStub) LikeCount(ctx context.Context, postID uint) (int64, error) {
	if s.likeCountFn != nil {
		return s.likeCountFn(ctx, postID)
	}
	return 0, nil
}

type commentRepoStub struct {
	createFn     func(ctx context.Context, comment *models.Comment) error
	listByPostFn func(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn != nil {
		return s.createFn(ctx, comment)
	}
	return nil
}

func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error) {
	if s.listByPostFn != nil {
		return s.listByPostFn(ctx, postID, limit, offset)
	}
	return nil, 0, nil
}
