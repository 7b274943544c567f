package repository

import (
	"context"
	"errors"
	"strings"

	"miniblog/internal/models"
	"miniblog/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, mentionUserIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, params pagination.Params) ([]*models.Post, int64, error)
	ListByUser(ctx context.Context, userID uint, params pagination.Params) ([]*models.Post, int64, error)
	SearchByMention(ctx context.Context, username string, params pagination.Params) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// postSortColumns whitelists the sortable fields of the posts table.
var postSortColumns = pagination.Columns{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create persists the post and its mention rows in one transaction. The
// mention set is frozen here; updates never touch it again.
func (r *postRepository) Create(ctx context.Context, post *models.Post, mentionUserIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, userID := range mentionUserIDs {
			if err := tx.Create(&models.PostMention{PostID: post.ID, UserID: userID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	post.MentionUserIDs = append([]uint{}, mentionUserIDs...)
	post.LikeUserIDs = []uint{}
	post.CommentIDs = []uint{}
	post.RePostUserIDs = []uint{}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.enrichPosts(ctx, []*models.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, params pagination.Params) ([]*models.Post, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.Post{}), params)
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, params pagination.Params) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID)
	return r.list(ctx, base, params)
}

// SearchByMention matches posts whose content contains the literal @username,
// case-insensitively. Best-effort text search over the frozen content.
func (r *postRepository) SearchByMention(ctx context.Context, username string, params pagination.Params) ([]*models.Post, int64, error) {
	like := "%@" + strings.ToLower(username) + "%"
	base := r.db.WithContext(ctx).Model(&models.Post{}).Where("LOWER(content) LIKE ?", like)
	return r.list(ctx, base, params)
}

// list counts then pages a prepared query. The count runs on the same filtered
// query so totals stay consistent with the page contents.
func (r *postRepository) list(ctx context.Context, base *gorm.DB, params pagination.Params) ([]*models.Post, int64, error) {
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := base.Session(&gorm.Session{}).
		Preload("User").
		Order(params.OrderClause(postSortColumns)).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := r.enrichPosts(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// enrichPosts fills the derived membership sets (likes, mentions, comment ids,
// re-poster ids) for a batch of posts with one query per relation.
func (r *postRepository) enrichPosts(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(posts))
	byID := make(map[uint]*models.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.LikeUserIDs = []uint{}
		p.CommentIDs = []uint{}
		p.RePostUserIDs = []uint{}
		p.MentionUserIDs = []uint{}
	}

	var likes []models.PostLike
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("id ASC").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, l := range likes {
		p := byID[l.PostID]
		p.LikeUserIDs = append(p.LikeUserIDs, l.UserID)
	}

	var mentions []models.PostMention
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", ids).
		Order("id ASC").
		Find(&mentions).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, m := range mentions {
		p := byID[m.PostID]
		p.MentionUserIDs = append(p.MentionUserIDs, m.UserID)
	}

	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Select("id", "post_id").
		Where("post_id IN ?", ids).
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, c := range comments {
		p := byID[c.PostID]
		p.CommentIDs = append(p.CommentIDs, c.ID)
	}

	// Re-posters are derived from posts that point back at these via
	// original_post_id, one entry per distinct author.
	var reposts []models.Post
	if err := r.db.WithContext(ctx).
		Select("user_id", "original_post_id").
		Where("original_post_id IN ?", ids).
		Order("id ASC").
		Find(&reposts).Error; err != nil {
		return models.NewInternalError(err)
	}
	seen := make(map[[2]uint]struct{}, len(reposts))
	for _, rp := range reposts {
		p := byID[*rp.OriginalPostID]
		key := [2]uint{p.ID, rp.UserID}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		p.RePostUserIDs = append(p.RePostUserIDs, rp.UserID)
	}

	return nil
}

// Update saves title/content edits. Mention rows are left untouched.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Updates(map[string]interface{}{
			"title":   post.Title,
			"content": post.Content,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete hard-deletes the post and its own join rows. Comments are left in
// place deliberately; see the service layer.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostMention{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Like inserts the membership row; the unique index plus DO NOTHING makes
// concurrent duplicate likes a no-op rather than an error.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostLike{UserID: userID, PostID: postID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostLike{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
