package schedule

import (
	"context"

	"badmintok/internal/domain"
)

type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.BandSchedule) error
	GetByID(ctx context.Context, id int64) (*domain.BandSchedule, error)
	Save(ctx context.Context, s *domain.BandSchedule) error
	Delete(ctx context.Context, id int64) error
	ListByBand(ctx context.Context, bandID int64, upcomingOnly bool, limit, offset int) ([]domain.BandSchedule, int64, error)

	SaveApproval(ctx context.Context, a *domain.BandScheduleApplication) (bool, error)
	SaveCancellation(ctx context.Context, a *domain.BandScheduleApplication, releaseSlot bool) error

	CreateApplication(ctx context.Context, a *domain.BandScheduleApplication) error
	GetApplication(ctx context.Context, id int64) (*domain.BandScheduleApplication, error)
	GetApplicationByUser(ctx context.Context, scheduleID, userID int64) (*domain.BandScheduleApplication, error)
	SaveApplication(ctx context.Context, a *domain.BandScheduleApplication) error
	ListApplications(ctx context.Context, scheduleID int64, status domain.ApplicationStatus) ([]domain.BandScheduleApplication, error)
	ListUserApplications(ctx context.Context, userID int64, limit, offset int) ([]domain.BandScheduleApplication, int64, error)
}

// MemberStore is the slice of the band repository the schedule service needs
// for membership checks.
type MemberStore interface {
	GetMember(ctx context.Context, bandID, userID int64) (*domain.BandMember, error)
}

// NotificationSender delivers application verdicts. A nil sender disables
// notifications.
type NotificationSender interface {
	ApplicationApproved(ctx context.Context, userID, scheduleID int64, scheduleTitle string)
	ApplicationRejected(ctx context.Context, userID, scheduleID int64, scheduleTitle, reason string)
}
