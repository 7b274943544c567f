package server

import (
	"miniblog/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/v1/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	params := parsePageParams(c)
	users, total, err := s.userService.ListUsers(c.UserContext(), params)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondPage(c, "Users retrieved", users, pagination.NewMeta(params, total))
}

// SearchUsers handles GET /api/v1/users/search?q=&limit=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	users, err := s.userService.SearchUsers(c.UserContext(), c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondOK(c, "Users retrieved", users)
}

// GetUser handles GET /api/v1/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondOK(c, "User retrieved", user)
}

// GetUserByUsername handles GET /api/v1/users/username/:username
func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondOK(c, "User retrieved", user)
}

// GetUserPosts handles GET /api/v1/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	params := parsePageParams(c)
	posts, total, err := s.postService.ListPostsByUser(c.UserContext(), id, params)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondPage(c, "Posts retrieved", posts, pagination.NewMeta(params, total))
}

// GetUserPostsByUsername handles GET /api/v1/users/username/:username/posts.
// An unknown username yields an empty page rather than a 404.
func (s *Server) GetUserPostsByUsername(c *fiber.Ctx) error {
	params := parsePageParams(c)
	posts, total, err := s.postService.ListPostsByUsername(c.UserContext(), c.Params("username"), params)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondPage(c, "Posts retrieved", posts, pagination.NewMeta(params, total))
}
