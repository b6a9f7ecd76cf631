package band

import "errors"

var (
	ErrBandNotFound    = errors.New("band not found")
	ErrCreationBlocked = errors.New("band creation is blocked for this user")

	ErrNotMember      = errors.New("not an active member of this band")
	ErrAlreadyMember  = errors.New("already a member of this band")
	ErrJoinPending    = errors.New("join request is already pending")
	ErrBannedFromBand = errors.New("banned from this band")
	ErrMemberNotFound = errors.New("member not found")

	ErrForbidden        = errors.New("insufficient band role")
	ErrOwnerCannotLeave = errors.New("the owner cannot leave the band")

	ErrDeletionAlreadyRequested = errors.New("deletion already requested")

	ErrPostNotFound = errors.New("post not found")
	ErrVoteNotFound = errors.New("vote not found")
	ErrVoteClosed   = errors.New("vote is closed")
	ErrAlreadyVoted = errors.New("already voted for this option")
	ErrSingleChoice = errors.New("vote allows only one choice")

	ErrBookmarkExists   = errors.New("band already bookmarked")
	ErrBookmarkNotFound = errors.New("bookmark not found")
)
