package account

type UpdateProfileRequest struct {
	ActivityName        *string `json:"activity_name" binding:"omitempty,max=30"`
	Gender              *string `json:"gender" binding:"omitempty,oneof=male female other unknown"`
	AgeRange            *string `json:"age_range" binding:"omitempty,max=50"`
	BirthYear           *int    `json:"birth_year" binding:"omitempty,min=1900,max=2100"`
	PhoneNumber         *string `json:"phone_number" binding:"omitempty,max=20"`
	ShippingReceiver    *string `json:"shipping_receiver" binding:"omitempty,max=100"`
	ShippingPhoneNumber *string `json:"shipping_phone_number" binding:"omitempty,max=20"`
	ShippingAddress     *string `json:"shipping_address"`
}

type SetRealNameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type BlockUserRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

type ReportRequest struct {
	TargetID int64  `json:"target_id" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

type InquiryRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}
