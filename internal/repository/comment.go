package repository

import (
	"context"
	"errors"

	"miniblog/internal/models"
	"miniblog/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment, mentionUserIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListTopLevelByPost(ctx context.Context, postID uint, params pagination.Params) ([]*models.Comment, int64, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, commentID uint) (bool, error)
	Like(ctx context.Context, userID, commentID uint) error
	Unlike(ctx context.Context, userID, commentID uint) error
}

// commentSortColumns whitelists the sortable fields of the comments table.
var commentSortColumns = pagination.Columns{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment, mentionUserIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		for _, userID := range mentionUserIDs {
			if err := tx.Create(&models.CommentMention{CommentID: comment.ID, UserID: userID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	comment.MentionUserIDs = append([]uint{}, mentionUserIDs...)
	comment.LikeUserIDs = []uint{}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment")
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichComments(ctx, []*models.Comment{&comment}); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListTopLevelByPost pages the root comments of a post. Replies hang off their
// parent and are reached through it, not listed here.
func (r *commentRepository) ListTopLevelByPost(ctx context.Context, postID uint, params pagination.Params) ([]*models.Comment, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND parent_comment_id IS NULL", postID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var comments []*models.Comment
	err := base.Session(&gorm.Session{}).
		Preload("User").
		Order(params.OrderClause(commentSortColumns)).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := r.enrichComments(ctx, comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// enrichComments fills derived like and mention sets for a batch of comments.
func (r *commentRepository) enrichComments(ctx context.Context, comments []*models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(comments))
	byID := make(map[uint]*models.Comment, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
		byID[c.ID] = c
		c.LikeUserIDs = []uint{}
		c.MentionUserIDs = []uint{}
	}

	var likes []models.CommentLike
	if err := r.db.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Order("id ASC").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, l := range likes {
		c := byID[l.CommentID]
		c.LikeUserIDs = append(c.LikeUserIDs, l.UserID)
	}

	var mentions []models.CommentMention
	if err := r.db.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Order("id ASC").
		Find(&mentions).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, m := range mentions {
		c := byID[m.CommentID]
		c.MentionUserIDs = append(c.MentionUserIDs, m.UserID)
	}

	return nil
}

// Delete removes the comment and its join rows. The post's comment list is
// derived by query, so no compensating write is needed; replies keep their
// dangling parent id like comments of a deleted post do.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentMention{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *commentRepository) Like(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CommentLike{UserID: userID, CommentID: commentID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) Unlike(ctx context.Context, userID, commentID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
