package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/follow/:id
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	if err := s.userService.Follow(c.UserContext(), userID, targetID); err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"following":   targetID,
		"isFollowing": true,
	})
}

// UnfollowUser handles DELETE /api/follow/:id
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	if err := s.userService.Unfollow(c.UserContext(), userID, targetID); err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"following":   targetID,
		"isFollowing": false,
	})
}

// GetFollowers handles GET /api/follow/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	p := parsePage(c)

	page, err := s.userService.GetFollowers(c.UserContext(), currentUserID(c), p.Page, p.Size)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// GetFollowing handles GET /api/follow/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	p := parsePage(c)

	page, err := s.userService.GetFollowing(c.UserContext(), currentUserID(c), p.Page, p.Size)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}
