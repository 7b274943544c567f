package service

import (
	"context"
	"testing"

	"miniblog/internal/models"
	"miniblog/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn            func(context.Context, *models.User) error
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	listFn              func(context.Context, pagination.Params) ([]models.User, int64, error)
	searchFn            func(context.Context, string, int) ([]models.User, error)
	getIDsByUsernamesFn func(context.Context, []string) (map[string]uint, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context, params pagination.Params) ([]models.User, int64, error) {
	return s.listFn(ctx, params)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit)
}
func (s *userRepoStub) GetIDsByUsernames(ctx context.Context, usernames []string) (map[string]uint, error) {
	return s.getIDsByUsernamesFn(ctx, usernames)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		listFn: func(_ context.Context, _ pagination.Params) ([]models.User, int64, error) {
			return nil, 0, nil
		},
		searchFn: func(_ context.Context, _ string, _ int) ([]models.User, error) { return nil, nil },
		getIDsByUsernamesFn: func(_ context.Context, _ []string) (map[string]uint, error) {
			return map[string]uint{}, nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn          func(context.Context, *models.Post, []uint) error
	getByIDFn         func(context.Context, uint) (*models.Post, error)
	listFn            func(context.Context, pagination.Params) ([]*models.Post, int64, error)
	listByUserFn      func(context.Context, uint, pagination.Params) ([]*models.Post, int64, error)
	searchByMentionFn func(context.Context, string, pagination.Params) ([]*models.Post, int64, error)
	updateFn          func(context.Context, *models.Post) error
	deleteFn          func(context.Context, uint) error
	isLikedFn         func(context.Context, uint, uint) (bool, error)
	likeFn            func(context.Context, uint, uint) error
	unlikeFn          func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post, mentionUserIDs []uint) error {
	return s.createFn(ctx, post, mentionUserIDs)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, params pagination.Params) ([]*models.Post, int64, error) {
	return s.listFn(ctx, params)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, params pagination.Params) ([]*models.Post, int64, error) {
	return s.listByUserFn(ctx, userID, params)
}
func (s *postRepoStub) SearchByMention(ctx context.Context, username string, params pagination.Params) ([]*models.Post, int64, error) {
	return s.searchByMentionFn(ctx, username, params)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, p *models.Post, _ []uint) error { p.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn: func(_ context.Context, _ pagination.Params) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _ pagination.Params) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		searchByMentionFn: func(_ context.Context, _ string, _ pagination.Params) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		isLikedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:    func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn             func(context.Context, *models.Comment, []uint) error
	getByIDFn            func(context.Context, uint) (*models.Comment, error)
	listTopLevelByPostFn func(context.Context, uint, pagination.Params) ([]*models.Comment, int64, error)
	deleteFn             func(context.Context, uint) error
	isLikedFn            func(context.Context, uint, uint) (bool, error)
	likeFn               func(context.Context, uint, uint) error
	unlikeFn             func(context.Context, uint, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment, mentionUserIDs []uint) error {
	return s.createFn(ctx, comment, mentionUserIDs)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListTopLevelByPost(ctx context.Context, postID uint, params pagination.Params) ([]*models.Comment, int64, error) {
	return s.listTopLevelByPostFn(ctx, postID, params)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, commentID)
}
func (s *commentRepoStub) Like(ctx context.Context, userID, commentID uint) error {
	return s.likeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) Unlike(ctx context.Context, userID, commentID uint) error {
	return s.unlikeFn(ctx, userID, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, c *models.Comment, _ []uint) error { c.ID = 1; return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listTopLevelByPostFn: func(_ context.Context, _ uint, _ pagination.Params) ([]*models.Comment, int64, error) {
			return nil, 0, nil
		},
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		isLikedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:    func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}
