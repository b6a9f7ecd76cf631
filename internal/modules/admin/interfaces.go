package admin

import (
	"context"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"
)

type BandRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Band, error)
	Save(ctx context.Context, b *domain.Band) error
	Delete(ctx context.Context, bandID int64) error
	ListPendingApproval(ctx context.Context, limit, offset int) ([]domain.Band, int64, error)
	ListDeletionRequested(ctx context.Context, limit, offset int) ([]domain.Band, int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, search string, active *bool, limit, offset int) ([]domain.User, int64, error)
	SetActive(ctx context.Context, userID int64, active bool) error
	SetBandCreationBlock(ctx context.Context, userID int64, until *time.Time) error
}

type SupportRepository interface {
	ListOpenReports(ctx context.Context, limit, offset int) ([]domain.Report, int64, error)
	ResolveReport(ctx context.Context, id int64) error
	ListInquiries(ctx context.Context, userID int64, limit, offset int) ([]domain.Inquiry, int64, error)
	AnswerInquiry(ctx context.Context, id int64, answer string) error
}

type StatsRepository interface {
	Collect(ctx context.Context) (*repository.PlatformStats, error)
}

type TokenRevoker interface {
	RevokeByUser(ctx context.Context, userID int64) error
}

// NotificationSender delivers moderation verdicts. A nil sender disables
// notifications.
type NotificationSender interface {
	BandApproved(ctx context.Context, userID, bandID int64, bandName string)
	BandRejected(ctx context.Context, userID, bandID int64, bandName, reason string)
	BandDeleted(ctx context.Context, userID, bandID int64, bandName string)
}
