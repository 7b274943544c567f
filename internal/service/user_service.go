package service

import (
	"context"
	"strings"

	"miniblog/internal/models"
	"miniblog/internal/pagination"
	"miniblog/internal/repository"
)

// UserService serves public profile reads.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByUsername resolves a profile by its username, 404 when absent.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, params pagination.Params) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, params)
}

const maxSearchResults = 20

// SearchUsers is the username autocomplete behind the mention composer.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > maxSearchResults {
		limit = maxSearchResults
	}
	return s.userRepo.Search(ctx, query, limit)
}
