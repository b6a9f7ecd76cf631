package repository

import (
	"context"
	"time"

	"badmintok/internal/domain"

	"gorm.io/gorm"
)

type SupportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

// Blocks.

func (r *SupportRepository) AddBlock(ctx context.Context, b *domain.UserBlock) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *SupportRepository) RemoveBlock(ctx context.Context, userID, blockedID int64) error {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked_id = ?", userID, blockedID).
		Delete(&domain.UserBlock{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SupportRepository) ListBlocks(ctx context.Context, userID int64) ([]domain.UserBlock, error) {
	var blocks []domain.UserBlock
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Blocked").
		Order("created_at DESC").
		Find(&blocks).Error
	return blocks, err
}

func (r *SupportRepository) BlockExists(ctx context.Context, userID, blockedID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.UserBlock{}).
		Where("user_id = ? AND blocked_id = ?", userID, blockedID).
		Count(&n).Error
	return n > 0, err
}

// Reports.

func (r *SupportRepository) CreateReport(ctx context.Context, rep *domain.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *SupportRepository) ListOpenReports(ctx context.Context, limit, offset int) ([]domain.Report, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Report{}).Where("status = ?", domain.ReportOpen)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []domain.Report
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *SupportRepository) ResolveReport(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&domain.Report{}).
		Where("id = ? AND status = ?", id, domain.ReportOpen).
		Update("status", domain.ReportResolved)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Inquiries.

func (r *SupportRepository) CreateInquiry(ctx context.Context, i *domain.Inquiry) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *SupportRepository) GetInquiry(ctx context.Context, id int64) (*domain.Inquiry, error) {
	var i domain.Inquiry
	err := r.db.WithContext(ctx).First(&i, id).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *SupportRepository) ListInquiries(ctx context.Context, userID int64, limit, offset int) ([]domain.Inquiry, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Inquiry{})
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var inquiries []domain.Inquiry
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&inquiries).Error; err != nil {
		return nil, 0, err
	}
	return inquiries, total, nil
}

func (r *SupportRepository) AnswerInquiry(ctx context.Context, id int64, answer string) error {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).Model(&domain.Inquiry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"answer":      answer,
			"status":      domain.InquiryAnswered,
			"answered_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
