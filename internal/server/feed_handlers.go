package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPersonalFeed handles GET /api/feed
func (s *Server) GetPersonalFeed(c *fiber.Ctx) error {
	p := parsePage(c)

	page, err := s.feedService.GetPersonalFeed(c.UserContext(), currentUserID(c), p.Page, p.Size)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// GetUserFeed handles GET /api/feed/users/:username
func (s *Server) GetUserFeed(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid username"))
	}
	p := parsePage(c)

	page, err := s.feedService.GetUserFeed(c.UserContext(), username, p.Page, p.Size, currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// GetDiscoveryFeed handles GET /api/feed/discover
func (s *Server) GetDiscoveryFeed(c *fiber.Ctx) error {
	p := parsePage(c)

	viewerID, _ := s.optionalUserID(c)
	page, err := s.feedService.GetDiscoveryFeed(c.UserContext(), p.Page, p.Size, viewerID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}
