package domain

import "time"

type PostSource string

const (
	SourceCommunity PostSource = "community"
	SourceNews      PostSource = "news"
	SourceReviews   PostSource = "member_reviews"
)

type Category struct {
	ID       int64      `json:"id" gorm:"primaryKey"`
	Name     string     `json:"name" gorm:"size:100;not null"`
	Slug     string     `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Source   PostSource `json:"source" gorm:"size:20;index"`
	ParentID *int64     `json:"parent_id,omitempty" gorm:"index"`
	IsActive bool       `json:"is_active"`
	Order    int        `json:"order"`
}

func (Category) TableName() string { return "categories" }

type Post struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	AuthorID   int64      `json:"author_id" gorm:"index;not null"`
	Author     *User      `json:"-" gorm:"foreignKey:AuthorID"`
	CategoryID *int64     `json:"category_id,omitempty" gorm:"index"`
	Category   *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Source     PostSource `json:"source" gorm:"size:20;index"`

	Title   string `json:"title" gorm:"size:200;not null"`
	Content string `json:"content" gorm:"type:text;not null"`
	Slug    string `json:"slug,omitempty" gorm:"size:200;index"`

	ViewCount    int `json:"view_count" gorm:"index"`
	LikeCount    int `json:"like_count"`
	CommentCount int `json:"comment_count"`

	IsDeleted   bool       `json:"-" gorm:"index"`
	IsDraft     bool       `json:"is_draft"`
	PublishedAt *time.Time `json:"published_at,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	Images []PostImage `json:"images,omitempty" gorm:"foreignKey:PostID"`
}

func (Post) TableName() string { return "posts" }

// Visible reports whether the post is readable by the public: not a draft
// and published no later than now.
func (p *Post) Visible(now time.Time) bool {
	return !p.IsDraft && p.PublishedAt != nil && !p.PublishedAt.After(now)
}

type PostImage struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    int64     `json:"post_id" gorm:"index;not null"`
	Image     string    `json:"image" gorm:"not null"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostImage) TableName() string { return "post_images" }

type Comment struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	PostID   int64  `json:"post_id" gorm:"index;not null"`
	Post     *Post  `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID int64  `json:"author_id" gorm:"index;not null"`
	Author   *User  `json:"-" gorm:"foreignKey:AuthorID"`
	ParentID *int64 `json:"parent_id,omitempty" gorm:"index"`

	Content   string `json:"content" gorm:"type:text;not null"`
	LikeCount int    `json:"like_count"`
	IsDeleted bool   `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

type PostLike struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    int64     `json:"post_id" gorm:"uniqueIndex:idx_post_like;not null"`
	Post      *Post     `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_post_like;index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string { return "post_likes" }
