package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/likes/posts/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.postService.LikePost(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"postId":    result.PostID,
		"likeCount": result.LikeCount,
		"isLiked":   result.Liked,
	})
}

// UnlikePost handles DELETE /api/likes/posts/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.postService.UnlikePost(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"postId":    result.PostID,
		"likeCount": result.LikeCount,
		"isLiked":   result.Liked,
	})
}
