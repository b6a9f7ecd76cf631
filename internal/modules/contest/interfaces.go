package contest

import (
	"context"

	"badmintok/internal/domain"
	"badmintok/internal/repository"
)

type ContestRepository interface {
	ListCategories(ctx context.Context) ([]domain.ContestCategory, error)

	Create(ctx context.Context, c *domain.Contest) error
	GetByID(ctx context.Context, id int64) (*domain.Contest, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Contest, error)
	Save(ctx context.Context, c *domain.Contest) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.ContestFilter) ([]domain.Contest, int64, error)

	AddLike(ctx context.Context, l *domain.ContestLike) error
	RemoveLike(ctx context.Context, contestID, userID int64) error
	LikeExists(ctx context.Context, contestID, userID int64) (bool, error)
	ListLiked(ctx context.Context, userID int64, limit, offset int) ([]domain.Contest, int64, error)
}
