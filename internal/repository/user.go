// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"miniblog/internal/models"
	"miniblog/internal/pagination"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, params pagination.Params) ([]models.User, int64, error)
	Search(ctx context.Context, query string, limit int) ([]models.User, error)
	GetIDsByUsernames(ctx context.Context, usernames []string) (map[string]uint, error)
}

// userSortColumns whitelists the sortable fields of the users table.
var userSortColumns = pagination.Columns{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"username":  "username",
	"email":     "email",
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return translateUserConflict(err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// translateUserConflict names the offending field when the driver message
// reveals it, so a duplicate-key race surfaces the same way as the
// service-level pre-check.
func translateUserConflict(err error) *models.AppError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "username"):
		return models.NewConflictError("username", "Username already taken")
	case strings.Contains(msg, "email"):
		return models.NewConflictError("email", "Email already registered")
	default:
		return models.NewConflictError("user", "User already exists")
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User")
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, params pagination.Params) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Order(params.OrderClause(userSortColumns)).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	var users []models.User
	like := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE ?", like).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) GetIDsByUsernames(ctx context.Context, usernames []string) (map[string]uint, error) {
	result := make(map[string]uint, len(usernames))
	if len(usernames) == 0 {
		return result, nil
	}

	var users []models.User
	err := r.db.WithContext(ctx).
		Select("id", "username").
		Where("username IN ?", usernames).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, u := range users {
		result[u.Username] = u.ID
	}
	return result, nil
}
