package domain

import "time"

type BandSchedule struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	BandID int64 `json:"band_id" gorm:"index;not null"`
	Band   *Band `json:"-" gorm:"foreignKey:BandID;constraint:OnDelete:CASCADE"`
	PostID *int64 `json:"post_id,omitempty" gorm:"index"`

	Title         string     `json:"title" gorm:"size:200;not null"`
	Description   string     `json:"description,omitempty" gorm:"type:text"`
	StartDatetime time.Time  `json:"start_datetime" gorm:"index;not null"`
	EndDatetime   *time.Time `json:"end_datetime,omitempty"`
	Location      string     `json:"location,omitempty" gorm:"size:200"`

	// MaxParticipants == 0 means unlimited. CurrentParticipants is only
	// ever moved by the guarded increment/decrement in the repository, so
	// it can never pass MaxParticipants or drop below zero.
	MaxParticipants     int `json:"max_participants,omitempty"`
	CurrentParticipants int `json:"current_participants"`

	RequiresApproval    bool       `json:"requires_approval"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty" gorm:"index"`
	BankAccount         string     `json:"bank_account,omitempty" gorm:"size:100"`
	IsClosed            bool       `json:"is_closed"`

	CreatedByID int64 `json:"created_by" gorm:"index;not null"`
	CreatedBy   *User `json:"-" gorm:"foreignKey:CreatedByID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BandSchedule) TableName() string { return "band_schedules" }

// Full reports whether the capacity ceiling has been reached. Only a hint
// for apply-time validation; the real guard is the conditional update.
func (s *BandSchedule) Full() bool {
	return s.MaxParticipants > 0 && s.CurrentParticipants >= s.MaxParticipants
}

func (s *BandSchedule) DeadlinePassed(now time.Time) bool {
	return s.ApplicationDeadline != nil && now.After(*s.ApplicationDeadline)
}

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationCancelled ApplicationStatus = "cancelled"
)

// BandScheduleApplication is one row per (schedule, user). Re-applying
// after rejection or cancellation resurrects the same row back to pending.
type BandScheduleApplication struct {
	ID         int64         `json:"id" gorm:"primaryKey"`
	ScheduleID int64         `json:"schedule_id" gorm:"uniqueIndex:idx_schedule_applicant;index;not null"`
	Schedule   *BandSchedule `json:"-" gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
	UserID     int64         `json:"user_id" gorm:"uniqueIndex:idx_schedule_applicant;index;not null"`
	User       *User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Status          ApplicationStatus `json:"status" gorm:"size:20;index"`
	Notes           string            `json:"notes,omitempty" gorm:"type:text"`
	RejectionReason string            `json:"rejection_reason,omitempty" gorm:"type:text"`

	AppliedAt    time.Time  `json:"applied_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewedByID *int64     `json:"reviewed_by,omitempty"`
}

func (BandScheduleApplication) TableName() string { return "band_schedule_applications" }
