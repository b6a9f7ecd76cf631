package domain

import "time"

type ContestCategory struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:100;not null"`
	Order int    `json:"order"`
}

func (ContestCategory) TableName() string { return "contest_categories" }

type Contest struct {
	ID         int64            `json:"id" gorm:"primaryKey"`
	CategoryID *int64           `json:"category_id,omitempty" gorm:"index"`
	Category   *ContestCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	Title string `json:"title" gorm:"size:200;not null"`
	Slug  string `json:"slug" gorm:"size:200;uniqueIndex;not null"`
	Image string `json:"image,omitempty"`

	ScheduleStart time.Time  `json:"schedule_start" gorm:"index;not null"`
	ScheduleEnd   *time.Time `json:"schedule_end,omitempty"`
	Location      string     `json:"location" gorm:"size:200"`
	EventDivision string     `json:"event_division" gorm:"size:255"`

	RegistrationStart time.Time `json:"registration_start"`
	RegistrationEnd   time.Time `json:"registration_end"`
	RegistrationLink  string    `json:"registration_link,omitempty"`

	EntryFee          string `json:"entry_fee,omitempty" gorm:"size:100"`
	CompetitionType   string `json:"competition_type,omitempty" gorm:"size:100"`
	ParticipantReward string `json:"participant_reward,omitempty" gorm:"size:255"`
	AwardReward       string `json:"award_reward,omitempty" gorm:"type:text"`
	Sponsor           string `json:"sponsor,omitempty" gorm:"size:255"`
	Description       string `json:"description,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Contest) TableName() string { return "contests" }

// RegistrationOpen reports whether entries are currently accepted.
func (c *Contest) RegistrationOpen(now time.Time) bool {
	day := now.Truncate(24 * time.Hour)
	return !day.Before(c.RegistrationStart) && !day.After(c.RegistrationEnd)
}

type ContestLike struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	ContestID int64     `json:"contest_id" gorm:"uniqueIndex:idx_contest_like;not null"`
	Contest   *Contest  `json:"-" gorm:"foreignKey:ContestID;constraint:OnDelete:CASCADE"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:idx_contest_like;index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContestLike) TableName() string { return "contest_likes" }
