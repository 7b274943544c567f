package server

import (
	"miniblog/internal/models"
	"miniblog/internal/pagination"
	"miniblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/v1/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		PostID          uint   `json:"post_id"`
		Content         string `json:"content"`
		ParentCommentID *uint  `json:"parent_comment_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return s.respondError(c, models.NewValidationError("post_id is required"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:          currentUserID(c),
		PostID:          req.PostID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondCreated(c, "Comment created successfully", comment)
}

// GetPostComments handles GET /api/v1/comments/post/:postId. Only top-level
// comments are listed; replies are reachable through their parent.
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	params := parsePageParams(c)
	comments, total, err := s.commentService.ListComments(c.UserContext(), postID, params)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondPage(c, "Comments retrieved", comments, pagination.NewMeta(params, total))
}

// LikeComment handles POST /api/v1/comments/:id/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.ToggleLike(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondOK(c, "Like toggled", comment)
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: id,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return s.respondOK(c, "Comment deleted successfully", comment)
}
