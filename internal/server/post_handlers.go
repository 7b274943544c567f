package server

import (
	"miniblog/internal/models"
	"miniblog/internal/pagination"
	"miniblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/v1/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	params := parsePageParams(c)
	posts, total, err := s.postService.ListPosts(c.UserContext(), params)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondPage(c, "Posts retrieved", posts, pagination.NewMeta(params, total))
}

// GetPost handles GET /api/v1/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondOK(c, "Post retrieved", post)
}

// GetPostsByMention handles GET /api/v1/posts/mention/:username
func (s *Server) GetPostsByMention(c *fiber.Ctx) error {
	params := parsePageParams(c)
	posts, total, err := s.postService.SearchByMention(c.UserContext(), c.Params("username"), params)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondPage(c, "Posts retrieved", posts, pagination.NewMeta(params, total))
}

// CreatePost handles POST /api/v1/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:  currentUserID(c),
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondCreated(c, "Post created successfully", post)
}

// UpdatePost handles PUT /api/v1/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:  currentUserID(c),
		PostID:  id,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondOK(c, "Post updated successfully", post)
}

// DeletePost handles DELETE /api/v1/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: id,
	}); err != nil {
		return s.respondError(c, err)
	}
	return s.respondOK(c, "Post deleted successfully", nil)
}

// LikePost handles POST /api/v1/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondOK(c, "Like toggled", post)
}

// RePost handles POST /api/v1/posts/:id/repost
func (s *Server) RePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.RePost(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondCreated(c, "Post re-posted successfully", post)
}
