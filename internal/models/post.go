package models

import "time"

// Post represents a mini-blog post. UserID is the owning author and never
// changes after creation. OriginalPostID is set when this post is a re-post.
type Post struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Title          string `gorm:"not null" json:"title"`
	Content        string `gorm:"type:text;not null" json:"content"`
	UserID         uint   `gorm:"not null;index" json:"user_id"`
	User           User   `gorm:"foreignKey:UserID" json:"author"`
	OriginalPostID *uint  `gorm:"index" json:"original_post_id,omitempty"`

	// Derived membership sets, filled at query time; not persisted columns.
	// Likes and mentions come from their join tables, CommentIDs from the
	// comments table and RePostUserIDs from posts that reference this one.
	LikeUserIDs    []uint `gorm:"-" json:"likes"`
	CommentIDs     []uint `gorm:"-" json:"comments"`
	RePostUserIDs  []uint `gorm:"-" json:"re_posts"`
	MentionUserIDs []uint `gorm:"-" json:"mentions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostLike records one user's like on a post. Set semantics are enforced by
// the unique (user_id, post_id) index.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostMention links a post to a user mentioned in its content. Mentions are
// frozen at creation time and never recomputed on update.
type PostMention struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PostID uint `gorm:"not null;uniqueIndex:idx_post_mention_post_user" json:"post_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_post_mention_post_user" json:"user_id"`
}
