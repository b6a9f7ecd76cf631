package repository

import (
	"context"
	"time"

	"badmintok/internal/domain"

	"gorm.io/gorm"
)

type BandRepository struct {
	db *gorm.DB
}

func NewBandRepository(db *gorm.DB) *BandRepository {
	return &BandRepository{db: db}
}

// BandFilter narrows down band listings.
type BandFilter struct {
	BandType    domain.BandType
	Region      domain.Region
	Search      string
	VisibleOnly bool
	Limit       int
	Offset      int
}

func (r *BandRepository) Create(ctx context.Context, b *domain.Band) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BandRepository) GetByID(ctx context.Context, id int64) (*domain.Band, error) {
	var b domain.Band
	err := r.db.WithContext(ctx).First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BandRepository) Save(ctx context.Context, b *domain.Band) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BandRepository) List(ctx context.Context, f BandFilter) ([]domain.Band, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Band{})

	if f.VisibleOnly {
		q = q.Where("is_public = ? AND is_approved = ?", true, true)
	}
	if f.BandType != "" {
		q = q.Where("band_type = ?", f.BandType)
	}
	if f.Region != "" && f.Region != domain.RegionAll {
		q = q.Where("region = ?", f.Region)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bands []domain.Band
	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&bands).Error; err != nil {
		return nil, 0, err
	}
	return bands, total, nil
}

// ListPendingApproval returns group/club bands waiting for moderation.
func (r *BandRepository) ListPendingApproval(ctx context.Context, limit, offset int) ([]domain.Band, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Band{}).
		Where("is_approved = ? AND rejection_reason = ?", false, "")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bands []domain.Band
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&bands).Error; err != nil {
		return nil, 0, err
	}
	return bands, total, nil
}

// ListDeletionRequested returns bands whose deletion awaits admin review.
func (r *BandRepository) ListDeletionRequested(ctx context.Context, limit, offset int) ([]domain.Band, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Band{}).
		Where("deletion_requested = ? AND deletion_approved_at IS NULL", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bands []domain.Band
	if err := q.Order("deletion_requested_at ASC").Limit(limit).Offset(offset).Find(&bands).Error; err != nil {
		return nil, 0, err
	}
	return bands, total, nil
}

// Delete removes the band and its dependent rows in one transaction.
// SQLite does not always enforce ON DELETE CASCADE, so the children are
// deleted explicitly.
func (r *BandRepository) Delete(ctx context.Context, bandID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var scheduleIDs []int64
		if err := tx.Model(&domain.BandSchedule{}).
			Where("band_id = ?", bandID).
			Pluck("id", &scheduleIDs).Error; err != nil {
			return err
		}
		if len(scheduleIDs) > 0 {
			if err := tx.Where("schedule_id IN ?", scheduleIDs).
				Delete(&domain.BandScheduleApplication{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("band_id = ?", bandID).Delete(&domain.BandSchedule{}).Error; err != nil {
			return err
		}

		var postIDs []int64
		if err := tx.Model(&domain.BandPost{}).
			Where("band_id = ?", bandID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			var voteIDs []int64
			if err := tx.Model(&domain.BandVote{}).
				Where("post_id IN ?", postIDs).
				Pluck("id", &voteIDs).Error; err != nil {
				return err
			}
			if len(voteIDs) > 0 {
				if err := tx.Where("vote_id IN ?", voteIDs).Delete(&domain.BandVoteChoice{}).Error; err != nil {
					return err
				}
				if err := tx.Where("vote_id IN ?", voteIDs).Delete(&domain.BandVoteOption{}).Error; err != nil {
					return err
				}
				if err := tx.Where("post_id IN ?", postIDs).Delete(&domain.BandVote{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&domain.BandComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&domain.BandPostLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("band_id = ?", bandID).Delete(&domain.BandPost{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("band_id = ?", bandID).Delete(&domain.BandMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("band_id = ?", bandID).Delete(&domain.BandBookmark{}).Error; err != nil {
			return err
		}

		return tx.Delete(&domain.Band{}, bandID).Error
	})
}

// Members.

func (r *BandRepository) AddMember(ctx context.Context, m *domain.BandMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *BandRepository) GetMember(ctx context.Context, bandID, userID int64) (*domain.BandMember, error) {
	var m domain.BandMember
	err := r.db.WithContext(ctx).
		Where("band_id = ? AND user_id = ?", bandID, userID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *BandRepository) SaveMember(ctx context.Context, m *domain.BandMember) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *BandRepository) RemoveMember(ctx context.Context, bandID, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("band_id = ? AND user_id = ?", bandID, userID).
		Delete(&domain.BandMember{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BandRepository) ListMembers(ctx context.Context, bandID int64, status domain.MemberStatus) ([]domain.BandMember, error) {
	q := r.db.WithContext(ctx).
		Where("band_id = ?", bandID).
		Preload("User")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var members []domain.BandMember
	if err := q.Order("joined_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *BandRepository) CountActiveMembers(ctx context.Context, bandID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BandMember{}).
		Where("band_id = ? AND status = ?", bandID, domain.MemberActive).
		Count(&n).Error
	return n, err
}

// ListUserBands returns bands where the user is an active member.
func (r *BandRepository) ListUserBands(ctx context.Context, userID int64) ([]domain.Band, error) {
	var bands []domain.Band
	err := r.db.WithContext(ctx).
		Joins("JOIN band_members ON band_members.band_id = bands.id").
		Where("band_members.user_id = ? AND band_members.status = ?", userID, domain.MemberActive).
		Order("band_members.last_visited_at DESC").
		Find(&bands).Error
	return bands, err
}

func (r *BandRepository) TouchMemberVisit(ctx context.Context, bandID, userID int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.BandMember{}).
		Where("band_id = ? AND user_id = ?", bandID, userID).
		Update("last_visited_at", at).Error
}

// Bookmarks.

func (r *BandRepository) AddBookmark(ctx context.Context, b *domain.BandBookmark) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BandRepository) RemoveBookmark(ctx context.Context, bandID, userID int64) error {
	tx := r.db.WithContext(ctx).
		Where("band_id = ? AND user_id = ?", bandID, userID).
		Delete(&domain.BandBookmark{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BandRepository) ListBookmarks(ctx context.Context, userID int64, limit, offset int) ([]domain.BandBookmark, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.BandBookmark{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookmarks []domain.BandBookmark
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Band").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&bookmarks).Error; err != nil {
		return nil, 0, err
	}
	return bookmarks, total, nil
}

func (r *BandRepository) BookmarkExists(ctx context.Context, bandID, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BandBookmark{}).
		Where("band_id = ? AND user_id = ?", bandID, userID).
		Count(&n).Error
	return n > 0, err
}
