package domain

import "time"

// UserBlock hides the blocked user's content from the blocker.
type UserBlock struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_user_block;index;not null"`
	BlockedID int64     `json:"blocked_id" gorm:"uniqueIndex:idx_user_block;not null"`
	Blocked   *User     `json:"blocked,omitempty" gorm:"foreignKey:BlockedID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserBlock) TableName() string { return "user_blocks" }

type ReportStatus string

const (
	ReportOpen     ReportStatus = "open"
	ReportResolved ReportStatus = "resolved"
)

type Report struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	ReporterID int64 `json:"reporter_id" gorm:"index;not null"`
	TargetID   int64 `json:"target_id" gorm:"index;not null"`

	Reason string       `json:"reason" gorm:"type:text;not null"`
	Status ReportStatus `json:"status" gorm:"size:20;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Report) TableName() string { return "reports" }

type InquiryStatus string

const (
	InquiryOpen     InquiryStatus = "open"
	InquiryAnswered InquiryStatus = "answered"
)

type Inquiry struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Title   string        `json:"title" gorm:"size:200;not null"`
	Content string        `json:"content" gorm:"type:text;not null"`
	Answer  string        `json:"answer,omitempty" gorm:"type:text"`
	Status  InquiryStatus `json:"status" gorm:"size:20;index"`

	CreatedAt  time.Time  `json:"created_at"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}

func (Inquiry) TableName() string { return "inquiries" }
