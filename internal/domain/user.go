package domain

import "time"

type AuthProvider string

const (
	ProviderKakao  AuthProvider = "kakao"
	ProviderNaver  AuthProvider = "naver"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	ID           int64        `json:"id" gorm:"primaryKey"`
	Email        string       `json:"email" gorm:"size:254;uniqueIndex;not null" validate:"required,email"`
	PasswordHash string       `json:"-" gorm:"size:128"`
	ActivityName string       `json:"activity_name" gorm:"size:30"`
	AuthProvider AuthProvider `json:"auth_provider,omitempty" gorm:"size:20"`
	IsActive     bool         `json:"is_active" gorm:"default:true"`
	IsAdmin      bool         `json:"-" gorm:"default:false"`

	// Set when an admin approves deletion of a band this user created.
	// While it lies in the future the user may not create new bands.
	BandCreationBlockedUntil *time.Time `json:"band_creation_blocked_until,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasUsablePassword reports whether password login is possible. Accounts
// created through social login never get a hash, which disables it.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != ""
}

func (u *User) BandCreationBlocked(now time.Time) bool {
	return u.BandCreationBlockedUntil != nil && now.Before(*u.BandCreationBlockedUntil)
}
