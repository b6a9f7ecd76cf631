package admin

import "errors"

var (
	ErrBandNotFound     = errors.New("band not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotPendingBand   = errors.New("band is not awaiting approval")
	ErrNoDeletionTicket = errors.New("band has no pending deletion request")
	ErrReasonRequired   = errors.New("reason is required")
)
