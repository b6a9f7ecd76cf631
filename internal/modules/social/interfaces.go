package social

import (
	"context"

	"badmintok/internal/domain"
	"badmintok/internal/modules/auth"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	Save(ctx context.Context, p *domain.Profile) error
}

// TokenIssuer mints a JWT pair once reconciliation succeeds. Satisfied by
// the auth service.
type TokenIssuer interface {
	IssueTokens(ctx context.Context, user *domain.User) (*auth.TokenPair, error)
}
