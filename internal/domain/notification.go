package domain

import "time"

type NotificationKind string

const (
	NotifyBandApproved        NotificationKind = "band_approved"
	NotifyBandRejected        NotificationKind = "band_rejected"
	NotifyBandDeleted         NotificationKind = "band_deleted"
	NotifyMemberApproved      NotificationKind = "member_approved"
	NotifyApplicationApproved NotificationKind = "application_approved"
	NotifyApplicationRejected NotificationKind = "application_rejected"
)

type Notification struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Kind    NotificationKind `json:"kind" gorm:"size:40;index"`
	Message string           `json:"message" gorm:"size:500"`

	// Optional references back to the subject of the notification.
	BandID     *int64 `json:"band_id,omitempty"`
	ScheduleID *int64 `json:"schedule_id,omitempty"`

	IsRead    bool      `json:"is_read" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Notification) TableName() string { return "notifications" }
