package auth

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email" validate:"required,email"`
	Password     string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	ActivityName string `json:"activity_name" binding:"required,max=30" validate:"required,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
