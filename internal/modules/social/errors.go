package social

import "errors"

var (
	ErrUnknownProvider = errors.New("unknown social provider")
	ErrInvalidState    = errors.New("oauth state mismatch")
	ErrEmailRequired   = errors.New("provider account has no email")
	ErrExchangeFailed  = errors.New("authorization code exchange failed")
	ErrUserInfoFailed  = errors.New("failed to fetch user info")
)
