package repository

import (
	"context"
	"time"

	"badmintok/internal/domain"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.BandSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.BandSchedule, error) {
	var s domain.BandSchedule
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepository) Save(ctx context.Context, s *domain.BandSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).
			Delete(&domain.BandScheduleApplication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.BandSchedule{}, id).Error
	})
}

func (r *ScheduleRepository) ListByBand(ctx context.Context, bandID int64, upcomingOnly bool, limit, offset int) ([]domain.BandSchedule, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.BandSchedule{}).Where("band_id = ?", bandID)
	if upcomingOnly {
		q = q.Where("start_datetime >= ?", time.Now())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var schedules []domain.BandSchedule
	q = q.Order("start_datetime ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&schedules).Error; err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

// SaveApproval claims a slot and persists the approved application in one
// transaction. The conditional update makes concurrent approvals safe
// without row locks; zero rows affected means the schedule is full and
// nothing is written. A failed save rolls the claimed slot back.
func (r *ScheduleRepository) SaveApproval(ctx context.Context, a *domain.BandScheduleApplication) (bool, error) {
	reserved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.BandSchedule{}).
			Where("id = ? AND (max_participants = 0 OR current_participants < max_participants)", a.ScheduleID).
			Update("current_participants", gorm.Expr("current_participants + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		reserved = true
		return tx.Save(a).Error
	})
	if err != nil {
		return false, err
	}
	return reserved, nil
}

// SaveCancellation persists the cancelled application and, when it held a
// slot, frees it in the same transaction. The decrement never goes below
// zero.
func (r *ScheduleRepository) SaveCancellation(ctx context.Context, a *domain.BandScheduleApplication, releaseSlot bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		if !releaseSlot {
			return nil
		}
		return tx.Model(&domain.BandSchedule{}).
			Where("id = ? AND current_participants > 0", a.ScheduleID).
			Update("current_participants", gorm.Expr("current_participants - 1")).Error
	})
}

// Applications.

func (r *ScheduleRepository) CreateApplication(ctx context.Context, a *domain.BandScheduleApplication) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ScheduleRepository) GetApplication(ctx context.Context, id int64) (*domain.BandScheduleApplication, error) {
	var a domain.BandScheduleApplication
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ScheduleRepository) GetApplicationByUser(ctx context.Context, scheduleID, userID int64) (*domain.BandScheduleApplication, error) {
	var a domain.BandScheduleApplication
	err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND user_id = ?", scheduleID, userID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ScheduleRepository) SaveApplication(ctx context.Context, a *domain.BandScheduleApplication) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ScheduleRepository) ListApplications(ctx context.Context, scheduleID int64, status domain.ApplicationStatus) ([]domain.BandScheduleApplication, error) {
	q := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var apps []domain.BandScheduleApplication
	if err := q.Order("applied_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ScheduleRepository) ListUserApplications(ctx context.Context, userID int64, limit, offset int) ([]domain.BandScheduleApplication, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.BandScheduleApplication{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []domain.BandScheduleApplication
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Schedule").
		Order("applied_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}
