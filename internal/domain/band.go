package domain

import "time"

type BandType string

const (
	BandFlash BandType = "flash" // one-off meetup, auto-approved
	BandGroup BandType = "group"
	BandClub  BandType = "club"
)

// RequiresApproval reports whether an admin has to approve the band before
// it becomes public. Flash bands skip moderation.
func (t BandType) RequiresApproval() bool {
	return t == BandGroup || t == BandClub
}

type Region string

const (
	RegionAll     Region = "all"
	RegionCapital Region = "capital"
	RegionBusan   Region = "busan" // covers the whole Yeongnam area
	RegionDaegu   Region = "daegu"
	RegionGwangju Region = "gwangju" // covers the whole Honam area
	RegionDaejeon Region = "daejeon" // covers the whole Chungcheong area
	RegionUlsan   Region = "ulsan"
	RegionJeju    Region = "jeju"
)

type Band struct {
	ID                  int64    `json:"id" gorm:"primaryKey"`
	Name                string   `json:"name" gorm:"size:200;not null"`
	Description         string   `json:"description" gorm:"size:500"`
	DetailedDescription string   `json:"detailed_description,omitempty" gorm:"type:text"`
	BandType            BandType `json:"band_type" gorm:"size:20;index"`
	Region              Region   `json:"region" gorm:"size:20;index"`
	CoverImage          string   `json:"cover_image,omitempty"`
	ProfileImage        string   `json:"profile_image,omitempty"`

	IsPublic             bool `json:"is_public" gorm:"index"`
	JoinApprovalRequired bool `json:"join_approval_required"`

	// Moderation. group/club only; flash is approved at creation.
	IsApproved      bool       `json:"is_approved"`
	RejectionReason string     `json:"rejection_reason,omitempty" gorm:"type:text"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovedByID    *int64     `json:"approved_by,omitempty"`

	// Two-step deletion: a band admin requests, a platform admin approves.
	DeletionRequested    bool       `json:"deletion_requested"`
	DeletionReason       string     `json:"deletion_reason,omitempty" gorm:"type:text"`
	DeletionRequestedAt  *time.Time `json:"deletion_requested_at,omitempty"`
	DeletionApprovedAt   *time.Time `json:"deletion_approved_at,omitempty"`
	DeletionApprovedByID *int64     `json:"deletion_approved_by,omitempty"`

	CreatedByID int64 `json:"created_by" gorm:"index;not null"`
	CreatedBy   *User `json:"-" gorm:"foreignKey:CreatedByID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Band) TableName() string { return "bands" }

// Visible reports whether the band shows up in public listings.
func (b *Band) Visible() bool { return b.IsPublic && b.IsApproved }

type BandRole string

const (
	RoleOwner  BandRole = "owner"
	RoleAdmin  BandRole = "admin"
	RoleMember BandRole = "member"
)

func (r BandRole) CanManage() bool { return r == RoleOwner || r == RoleAdmin }

type MemberStatus string

const (
	MemberActive  MemberStatus = "active"
	MemberPending MemberStatus = "pending"
	MemberBanned  MemberStatus = "banned"
)

type BandMember struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	BandID int64 `json:"band_id" gorm:"uniqueIndex:idx_band_member;index;not null"`
	Band   *Band `json:"-" gorm:"foreignKey:BandID;constraint:OnDelete:CASCADE"`
	UserID int64 `json:"user_id" gorm:"uniqueIndex:idx_band_member;index;not null"`
	User   *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Role   BandRole     `json:"role" gorm:"size:20;index"`
	Status MemberStatus `json:"status" gorm:"size:20;index"`

	JoinedAt      time.Time `json:"joined_at" gorm:"autoCreateTime"`
	LastVisitedAt time.Time `json:"last_visited_at" gorm:"autoUpdateTime"`
}

func (BandMember) TableName() string { return "band_members" }

type BandBookmark struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	BandID    int64     `json:"band_id" gorm:"uniqueIndex:idx_band_bookmark;not null"`
	Band      *Band     `json:"-" gorm:"foreignKey:BandID;constraint:OnDelete:CASCADE"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_band_bookmark;index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (BandBookmark) TableName() string { return "band_bookmarks" }
