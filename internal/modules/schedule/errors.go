package schedule

import "errors"

var (
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrScheduleClosed      = errors.New("schedule is closed for applications")
	ErrDeadlinePassed      = errors.New("application deadline has passed")
	ErrScheduleFull        = errors.New("schedule is full")
	ErrAlreadyApplied      = errors.New("application already exists")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotPending          = errors.New("application is not pending")
	ErrNotMember           = errors.New("not an active member of this band")
	ErrForbidden           = errors.New("insufficient band role")
)
