package account

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("current password is wrong")
	ErrNoPasswordAccount = errors.New("social account has no password")
	ErrAlreadyBlocked    = errors.New("user already blocked")
	ErrSelfBlock         = errors.New("cannot block yourself")
)
