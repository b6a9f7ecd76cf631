package repository

import (
	"context"
	"time"

	"badmintok/internal/domain"

	"gorm.io/gorm"
)

// StatsRepository aggregates the counters shown on the admin dashboard.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type PlatformStats struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	TotalBands        int64 `json:"total_bands"`
	PendingBands      int64 `json:"pending_bands"`
	DeletionRequests  int64 `json:"deletion_requests"`
	TotalPosts        int64 `json:"total_posts"`
	TotalContests     int64 `json:"total_contests"`
	SignupsToday      int64 `json:"signups_today"`
	ApplicationsToday int64 `json:"applications_today"`
}

func (r *StatsRepository) Collect(ctx context.Context) (*PlatformStats, error) {
	db := r.db.WithContext(ctx)
	stats := &PlatformStats{}

	counts := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&domain.User{})},
		{&stats.ActiveUsers, db.Model(&domain.User{}).Where("is_active = ?", true)},
		{&stats.TotalBands, db.Model(&domain.Band{})},
		{&stats.PendingBands, db.Model(&domain.Band{}).
			Where("is_approved = ? AND rejection_reason = ?", false, "")},
		{&stats.DeletionRequests, db.Model(&domain.Band{}).
			Where("deletion_requested = ? AND deletion_approved_at IS NULL", true)},
		{&stats.TotalPosts, db.Model(&domain.Post{}).Where("is_deleted = ?", false)},
		{&stats.TotalContests, db.Model(&domain.Contest{})},
	}
	for _, c := range counts {
		if err := c.q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := db.Model(&domain.User{}).
		Where("created_at >= ?", dayStart).
		Count(&stats.SignupsToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.BandScheduleApplication{}).
		Where("applied_at >= ?", dayStart).
		Count(&stats.ApplicationsToday).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
