package domain

import "time"

type BandPostType string

const (
	BandPostGeneral      BandPostType = "general"
	BandPostAnnouncement BandPostType = "announcement"
	BandPostSchedule     BandPostType = "schedule"
	BandPostVote         BandPostType = "vote"
	BandPostQuestion     BandPostType = "question"
)

type BandPost struct {
	ID       int64 `json:"id" gorm:"primaryKey"`
	BandID   int64 `json:"band_id" gorm:"index;not null"`
	Band     *Band `json:"-" gorm:"foreignKey:BandID;constraint:OnDelete:CASCADE"`
	AuthorID int64 `json:"author_id" gorm:"index;not null"`
	Author   *User `json:"-" gorm:"foreignKey:AuthorID"`

	Title    string       `json:"title" gorm:"size:200"`
	Content  string       `json:"content" gorm:"type:text;not null"`
	PostType BandPostType `json:"post_type" gorm:"size:20;index"`
	IsPinned bool         `json:"is_pinned" gorm:"index"`
	IsNotice bool         `json:"is_notice"`

	ViewCount    int `json:"view_count"`
	LikeCount    int `json:"like_count"`
	CommentCount int `json:"comment_count"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BandPost) TableName() string { return "band_posts" }

type BandComment struct {
	ID       int64     `json:"id" gorm:"primaryKey"`
	PostID   int64     `json:"post_id" gorm:"index;not null"`
	Post     *BandPost `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID int64     `json:"author_id" gorm:"index;not null"`
	Author   *User     `json:"-" gorm:"foreignKey:AuthorID"`
	ParentID *int64    `json:"parent_id,omitempty" gorm:"index"`

	Content   string `json:"content" gorm:"type:text;not null"`
	LikeCount int    `json:"like_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BandComment) TableName() string { return "band_comments" }

type BandPostLike struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    int64     `json:"post_id" gorm:"uniqueIndex:idx_band_post_like;not null"`
	Post      *BandPost `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_band_post_like;index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (BandPostLike) TableName() string { return "band_post_likes" }

type BandVote struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	PostID           int64      `json:"post_id" gorm:"uniqueIndex;not null"`
	Post             *BandPost  `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Title            string     `json:"title" gorm:"size:200;not null"`
	IsMultipleChoice bool       `json:"is_multiple_choice"`
	EndDatetime      *time.Time `json:"end_datetime,omitempty" gorm:"index"`
	CreatedAt        time.Time  `json:"created_at"`

	Options []BandVoteOption `json:"options,omitempty" gorm:"foreignKey:VoteID"`
}

func (BandVote) TableName() string { return "band_votes" }

func (v *BandVote) Closed(now time.Time) bool {
	return v.EndDatetime != nil && now.After(*v.EndDatetime)
}

type BandVoteOption struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	VoteID     int64     `json:"vote_id" gorm:"index;not null"`
	Vote       *BandVote `json:"-" gorm:"foreignKey:VoteID;constraint:OnDelete:CASCADE"`
	OptionText string    `json:"option_text" gorm:"size:200;not null"`
	VoteCount  int       `json:"vote_count"`
	OrderIndex int       `json:"order_index"`
}

func (BandVoteOption) TableName() string { return "band_vote_options" }

type BandVoteChoice struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	VoteID    int64           `json:"vote_id" gorm:"uniqueIndex:idx_vote_choice;not null"`
	Vote      *BandVote       `json:"-" gorm:"foreignKey:VoteID;constraint:OnDelete:CASCADE"`
	OptionID  int64           `json:"option_id" gorm:"uniqueIndex:idx_vote_choice;index;not null"`
	Option    *BandVoteOption `json:"-" gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE"`
	UserID    int64           `json:"user_id" gorm:"uniqueIndex:idx_vote_choice;index;not null"`
	CreatedAt time.Time       `json:"created_at"`
}

func (BandVoteChoice) TableName() string { return "band_vote_choices" }
