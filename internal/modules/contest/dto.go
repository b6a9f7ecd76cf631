package contest

type CreateContestRequest struct {
	Title             string `json:"title" binding:"required,max=200"`
	Slug              string `json:"slug" binding:"required,max=200"`
	CategoryID        *int64 `json:"category_id"`
	Image             string `json:"image"`
	ScheduleStart     string `json:"schedule_start" binding:"required"`
	ScheduleEnd       *string `json:"schedule_end"`
	Location          string `json:"location" binding:"max=200"`
	EventDivision     string `json:"event_division" binding:"max=255"`
	RegistrationStart string `json:"registration_start" binding:"required"`
	RegistrationEnd   string `json:"registration_end" binding:"required"`
	RegistrationLink  string `json:"registration_link"`
	EntryFee          string `json:"entry_fee" binding:"max=100"`
	CompetitionType   string `json:"competition_type" binding:"max=100"`
	ParticipantReward string `json:"participant_reward" binding:"max=255"`
	AwardReward       string `json:"award_reward"`
	Sponsor           string `json:"sponsor" binding:"max=255"`
	Description       string `json:"description"`
}

type UpdateContestRequest struct {
	Title             *string `json:"title" binding:"omitempty,max=200"`
	CategoryID        *int64  `json:"category_id"`
	Image             *string `json:"image"`
	ScheduleStart     *string `json:"schedule_start"`
	ScheduleEnd       *string `json:"schedule_end"`
	Location          *string `json:"location" binding:"omitempty,max=200"`
	EventDivision     *string `json:"event_division" binding:"omitempty,max=255"`
	RegistrationStart *string `json:"registration_start"`
	RegistrationEnd   *string `json:"registration_end"`
	RegistrationLink  *string `json:"registration_link"`
	EntryFee          *string `json:"entry_fee" binding:"omitempty,max=100"`
	CompetitionType   *string `json:"competition_type" binding:"omitempty,max=100"`
	ParticipantReward *string `json:"participant_reward" binding:"omitempty,max=255"`
	AwardReward       *string `json:"award_reward"`
	Sponsor           *string `json:"sponsor" binding:"omitempty,max=255"`
	Description       *string `json:"description"`
}
