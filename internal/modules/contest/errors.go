package contest

import "errors"

var (
	ErrContestNotFound = errors.New("contest not found")
	ErrLikeNotFound    = errors.New("contest is not liked")
	ErrSlugTaken       = errors.New("slug already in use")
)
