package schedule

type CreateScheduleRequest struct {
	Title               string  `json:"title" binding:"required,max=200"`
	Description         string  `json:"description"`
	StartDatetime       string  `json:"start_datetime" binding:"required"`
	EndDatetime         *string `json:"end_datetime"`
	Location            string  `json:"location" binding:"max=200"`
	MaxParticipants     int     `json:"max_participants" binding:"min=0"`
	RequiresApproval    bool    `json:"requires_approval"`
	ApplicationDeadline *string `json:"application_deadline"`
	BankAccount         string  `json:"bank_account" binding:"max=100"`
}

type UpdateScheduleRequest struct {
	Title               *string `json:"title" binding:"omitempty,max=200"`
	Description         *string `json:"description"`
	StartDatetime       *string `json:"start_datetime"`
	EndDatetime         *string `json:"end_datetime"`
	Location            *string `json:"location" binding:"omitempty,max=200"`
	MaxParticipants     *int    `json:"max_participants" binding:"omitempty,min=0"`
	ApplicationDeadline *string `json:"application_deadline"`
	BankAccount         *string `json:"bank_account" binding:"omitempty,max=100"`
	IsClosed            *bool   `json:"is_closed"`
}

type ApplyRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

type RejectApplicationRequest struct {
	Reason string `json:"reason" binding:"required"`
}
