package account

import (
	"context"
	"time"

	"badmintok/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	UpdateActivityName(ctx context.Context, userID int64, name string) error
	Deactivate(ctx context.Context, userID int64) error
	SetBandCreationBlock(ctx context.Context, userID int64, until *time.Time) error
}

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Save(ctx context.Context, p *domain.Profile) error
}

type SupportRepository interface {
	AddBlock(ctx context.Context, b *domain.UserBlock) error
	RemoveBlock(ctx context.Context, userID, blockedID int64) error
	ListBlocks(ctx context.Context, userID int64) ([]domain.UserBlock, error)
	BlockExists(ctx context.Context, userID, blockedID int64) (bool, error)
	CreateReport(ctx context.Context, r *domain.Report) error
	CreateInquiry(ctx context.Context, i *domain.Inquiry) error
	ListInquiries(ctx context.Context, userID int64, limit, offset int) ([]domain.Inquiry, int64, error)
}

type TokenRevoker interface {
	RevokeByUser(ctx context.Context, userID int64) error
}
