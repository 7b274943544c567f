package models

import "time"

// Comment represents a comment on a post. ParentCommentID is set for nested
// replies. The parent post's comment list is derived by query, so deleting a
// comment needs no compensating write on the post.
type Comment struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Content         string `gorm:"not null" json:"content"`
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	User            User   `gorm:"foreignKey:UserID" json:"author"`
	PostID          uint   `gorm:"not null;index" json:"post_id"`
	ParentCommentID *uint  `gorm:"index" json:"parent_comment_id,omitempty"`

	LikeUserIDs    []uint `gorm:"-" json:"likes"`
	MentionUserIDs []uint `gorm:"-" json:"mentions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentLike records one user's like on a comment, unique per (user, comment).
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentMention links a comment to a user mentioned in its content.
type CommentMention struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CommentID uint `gorm:"not null;uniqueIndex:idx_comment_mention_comment_user" json:"comment_id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_comment_mention_comment_user" json:"user_id"`
}
