package service

import (
	"context"
	"strings"

	"miniblog/internal/mentions"
	"miniblog/internal/models"
	"miniblog/internal/pagination"
	"miniblog/internal/repository"
)

const (
	maxPostTitleLen   = 100
	maxPostContentLen = 1000
)

// PostService implements post CRUD, like toggling and re-posting.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	resolver *mentions.Resolver
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		resolver: mentions.NewResolver(userRepo),
	}
}

func validatePostFields(title, content string) error {
	var fields []models.FieldError
	if strings.TrimSpace(title) == "" {
		fields = append(fields, models.FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > maxPostTitleLen {
		fields = append(fields, models.FieldError{Field: "title", Message: "title must be at most 100 characters"})
	}
	if strings.TrimSpace(content) == "" {
		fields = append(fields, models.FieldError{Field: "content", Message: "content is required"})
	} else if len(content) > maxPostContentLen {
		fields = append(fields, models.FieldError{Field: "content", Message: "content must be at most 1000 characters"})
	}
	if len(fields) > 0 {
		return models.NewValidationError("Validation failed", fields...)
	}
	return nil
}

// CreatePost persists a new post with its mention set resolved from the
// content. Unknown mentioned usernames are dropped silently.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Extract(ctx, in.Content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post, resolved.UserIDs); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, params pagination.Params) ([]*models.Post, int64, error) {
	return s.postRepo.List(ctx, params)
}

func (s *PostService) ListPostsByUser(ctx context.Context, userID uint, params pagination.Params) ([]*models.Post, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.postRepo.ListByUser(ctx, userID, params)
}

// ListPostsByUsername pages a profile's posts addressed by username. An
// unknown username yields an empty page rather than an error.
func (s *PostService) ListPostsByUsername(ctx context.Context, username string, params pagination.Params) ([]*models.Post, int64, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return []*models.Post{}, 0, nil
	}
	return s.postRepo.ListByUser(ctx, user.ID, params)
}

// SearchByMention pages posts whose content carries @username.
func (s *PostService) SearchByMention(ctx context.Context, username string, params pagination.Params) ([]*models.Post, int64, error) {
	if strings.TrimSpace(username) == "" {
		return nil, 0, models.NewValidationError("Username is required")
	}
	return s.postRepo.SearchByMention(ctx, username, params)
}

// UpdatePost edits title and content, author only. The mention set stays as
// resolved at creation.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewAuthorizationError("You can only update your own posts")
	}
	if err := validatePostFields(in.Title, in.Content); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost hard-deletes the post, author only. Its comments stay behind.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewAuthorizationError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

// ToggleLike flips the caller's like on a post and returns the updated post.
// Toggling twice always restores the starting state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// RePost creates a new post owned by the caller that references the original.
// The original's re-poster set is derived by query, so no write-back happens.
func (s *PostService) RePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	original, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	repost := &models.Post{
		Title:          "Re-post: " + original.Title,
		Content:        original.Content,
		UserID:         userID,
		OriginalPostID: &original.ID,
	}
	if err := s.postRepo.Create(ctx, repost, nil); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, repost.ID)
}
