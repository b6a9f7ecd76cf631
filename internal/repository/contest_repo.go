package repository

import (
	"context"
	"time"

	"badmintok/internal/domain"

	"gorm.io/gorm"
)

type ContestRepository struct {
	db *gorm.DB
}

func NewContestRepository(db *gorm.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

// ContestFilter narrows down contest listings.
type ContestFilter struct {
	CategoryID *int64
	Region     string
	Search     string
	UpcomingOn bool
	Limit      int
	Offset     int
}

func (r *ContestRepository) CreateCategory(ctx context.Context, c *domain.ContestCategory) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContestRepository) ListCategories(ctx context.Context) ([]domain.ContestCategory, error) {
	var cats []domain.ContestCategory
	err := r.db.WithContext(ctx).Order(`"order" ASC, id ASC`).Find(&cats).Error
	return cats, err
}

func (r *ContestRepository) Create(ctx context.Context, c *domain.Contest) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContestRepository) GetByID(ctx context.Context, id int64) (*domain.Contest, error) {
	var c domain.Contest
	err := r.db.WithContext(ctx).Preload("Category").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContestRepository) GetBySlug(ctx context.Context, slug string) (*domain.Contest, error) {
	var c domain.Contest
	err := r.db.WithContext(ctx).Preload("Category").Where("slug = ?", slug).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContestRepository) Save(ctx context.Context, c *domain.Contest) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContestRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contest_id = ?", id).Delete(&domain.ContestLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Contest{}, id).Error
	})
}

func (r *ContestRepository) List(ctx context.Context, f ContestFilter) ([]domain.Contest, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Contest{})

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Region != "" {
		q = q.Where("location LIKE ?", "%"+f.Region+"%")
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR location LIKE ?", like, like)
	}
	if f.UpcomingOn {
		q = q.Where("schedule_start >= ?", time.Now().Truncate(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contests []domain.Contest
	q = q.Preload("Category").Order("schedule_start ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&contests).Error; err != nil {
		return nil, 0, err
	}
	return contests, total, nil
}

// Likes.

func (r *ContestRepository) AddLike(ctx context.Context, l *domain.ContestLike) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ContestRepository) RemoveLike(ctx context.Context, contestID, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("contest_id = ? AND user_id = ?", contestID, userID).
		Delete(&domain.ContestLike{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContestRepository) LikeExists(ctx context.Context, contestID, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.ContestLike{}).
		Where("contest_id = ? AND user_id = ?", contestID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *ContestRepository) ListLiked(ctx context.Context, userID int64, limit, offset int) ([]domain.Contest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.ContestLike{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contests []domain.Contest
	q := r.db.WithContext(ctx).Model(&domain.Contest{}).
		Joins("JOIN contest_likes ON contest_likes.contest_id = contests.id").
		Where("contest_likes.user_id = ?", userID).
		Order("contest_likes.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&contests).Error; err != nil {
		return nil, 0, err
	}
	return contests, total, nil
}
