package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrAccountDeactivated    = errors.New("account deactivated")
	ErrPasswordLoginDisabled = errors.New("password login disabled for social account")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrRefreshTokenReused    = errors.New("refresh token reuse detected")
)
