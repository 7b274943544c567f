package service

import (
	"context"
	"strings"

	"miniblog/internal/mentions"
	"miniblog/internal/models"
	"miniblog/internal/pagination"
	"miniblog/internal/repository"
)

const maxCommentContentLen = 500

// CommentService implements comment creation, listing, deletion and likes.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	resolver    *mentions.Resolver
}

type CreateCommentInput struct {
	UserID          uint
	PostID          uint
	Content         string
	ParentCommentID *uint
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		resolver:    mentions.NewResolver(userRepo),
	}
}

// CreateComment adds a comment to a post, optionally nested under a parent
// comment on the same post. Mentions resolve the same way they do for posts.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentContentLen {
		return nil, models.NewValidationError("Comment must be at most 500 characters")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	if in.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	resolved, err := s.resolver.Extract(ctx, in.Content)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:         in.Content,
		UserID:          in.UserID,
		PostID:          in.PostID,
		ParentCommentID: in.ParentCommentID,
	}
	if err := s.commentRepo.Create(ctx, comment, resolved.UserIDs); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments pages the top-level comments of a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, params pagination.Params) ([]*models.Comment, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListTopLevelByPost(ctx, postID, params)
}

// DeleteComment removes the caller's own comment. Because the post's comment
// list is derived, the single delete is the whole operation.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewAuthorizationError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}
	return comment, nil
}

// ToggleLike flips the caller's like on a comment.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	liked, err := s.commentRepo.IsLiked(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	if liked {
		err = s.commentRepo.Unlike(ctx, userID, commentID)
	} else {
		err = s.commentRepo.Like(ctx, userID, commentID)
	}
	if err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}
