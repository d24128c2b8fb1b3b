package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondError(c, err)
	}

	profile, err := s.userService.GetProfile(c.UserContext(), user.Username)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
		Email       *string `json:"email"`
		Password    *string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:      currentUserID(c),
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// DeactivateMyAccount handles DELETE /api/users/me
func (s *Server) DeactivateMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeactivateUser(c.UserContext(), currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetUserProfile handles GET /api/users/:username
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}

	profile, err := s.userService.GetProfile(c.UserContext(), username)
	if err != nil {
		return models.RespondError(c, err)
	}

	// Authenticated viewers also learn whether they follow this profile.
	isFollowing := false
	if viewerID, ok := s.optionalUserID(c); ok && viewerID != profile.User.ID {
		isFollowing, err = s.userService.IsFollowing(c.UserContext(), viewerID, profile.User.ID)
		if err != nil {
			return models.RespondError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"user":        profile.User,
		"followers":   profile.Followers,
		"following":   profile.Following,
		"isFollowing": isFollowing,
	})
}
