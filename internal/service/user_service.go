// Package service contains the application's business logic.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account lifecycle and the social graph.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Bio         string
}

type UpdateProfileInput struct {
	UserID      uint
	DisplayName *string
	Bio         *string
	Email       *string
	Password    *string
}

// Profile is a user together with their social graph counts.
type Profile struct {
	User      *models.User `json:"user"`
	Followers int64        `json:"followers"`
	Following int64        `json:"following"`
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

// CreateUser registers a new account. The availability checks give friendly
// errors for the common case; the database unique indexes are what actually
// close the race between two concurrent registrations.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewAlreadyExistsError("Email already registered")
	}

	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewAlreadyExistsError("Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    string(hashed),
		DisplayName: in.DisplayName,
		Bio:         in.Bio,
		Active:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials for login. It returns Unauthorized for
// both unknown emails and bad passwords so the response does not reveal
// which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByUsername resolves a username to a user, treating deactivated
// accounts as absent.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

// GetProfile returns a user's public profile with follower counts.
func (s *UserService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Followers: followers, Following: following}, nil
}

// UpdateProfile patches the mutable profile fields. Nil fields are left
// untouched so callers can clear a bio by sending an empty string. Email
// changes re-check uniqueness; password changes are re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxDisplayNameLen = 100
	const maxBioLen = 500

	if in.DisplayName != nil {
		if len(*in.DisplayName) > maxDisplayNameLen {
			return nil, models.NewValidationError("Display name too long (max 100 characters)")
		}
		user.DisplayName = *in.DisplayName
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}

	if in.Email != nil && *in.Email != user.Email {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewAlreadyExistsError("Email already registered")
		}
		user.Email = *in.Email
	}

	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeactivateUser soft-deletes the account. Posts and follow edges survive.
func (s *UserService) DeactivateUser(ctx context.Context, userID uint) error {
	return s.userRepo.Deactivate(ctx, userID)
}

// Follow adds a follow edge from followerID to targetID. Following an
// already-followed user is a no-op.
func (s *UserService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("You cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if !target.Active {
		return models.NewNotFoundError("User", targetID)
	}

	return s.followRepo.Create(ctx, followerID, targetID)
}

// Unfollow removes the follow edge. Unfollowing someone not followed is a
// no-op.
func (s *UserService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	return s.followRepo.Delete(ctx, followerID, targetID)
}

// IsFollowing reports whether followerID currently follows targetID.
func (s *UserService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, targetID)
}

// GetFollowers lists active users following userID, newest edges first.
func (s *UserService) GetFollowers(ctx context.Context, userID uint, page, size int) (models.Page[models.User], error) {
	users, total, err := s.followRepo.Followers(ctx, userID, size, page*size)
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return models.NewPage(users, page, size, total), nil
}

// GetFollowing lists active users that userID follows, newest edges first.
func (s *UserService) GetFollowing(ctx context.Context, userID uint, page, size int) (models.Page[models.User], error) {
	users, total, err := s.followRepo.Following(ctx, userID, size, page*size)
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return models.NewPage(users, page, size, total), nil
}
