package repository

import (
	"context"

	"badmintok/internal/domain"

	"gorm.io/gorm"
)

type BandPostRepository struct {
	db *gorm.DB
}

func NewBandPostRepository(db *gorm.DB) *BandPostRepository {
	return &BandPostRepository{db: db}
}

func (r *BandPostRepository) Create(ctx context.Context, p *domain.BandPost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *BandPostRepository) GetByID(ctx context.Context, id int64) (*domain.BandPost, error) {
	var p domain.BandPost
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BandPostRepository) Save(ctx context.Context, p *domain.BandPost) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *BandPostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.BandComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.BandPostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.BandPost{}, id).Error
	})
}

// List returns pinned posts first, newest after.
func (r *BandPostRepository) List(ctx context.Context, bandID int64, postType domain.BandPostType, limit, offset int) ([]domain.BandPost, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.BandPost{}).Where("band_id = ?", bandID)
	if postType != "" {
		q = q.Where("post_type = ?", postType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []domain.BandPost
	q = q.Order("is_pinned DESC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *BandPostRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.BandPost{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// Comments.

func (r *BandPostRepository) CreateComment(ctx context.Context, c *domain.BandComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&domain.BandPost{}).
			Where("id = ?", c.PostID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

func (r *BandPostRepository) GetComment(ctx context.Context, id int64) (*domain.BandComment, error) {
	var c domain.BandComment
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *BandPostRepository) DeleteComment(ctx context.Context, c *domain.BandComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.BandComment{}, c.ID).Error; err != nil {
			return err
		}
		return tx.Model(&domain.BandPost{}).
			Where("id = ? AND comment_count > 0", c.PostID).
			Update("comment_count", gorm.Expr("comment_count - 1")).Error
	})
}

func (r *BandPostRepository) ListComments(ctx context.Context, postID int64) ([]domain.BandComment, error) {
	var comments []domain.BandComment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// Likes. Toggle semantics live in the service; these are plain writes.

func (r *BandPostRepository) AddLike(ctx context.Context, l *domain.BandPostLike) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		return tx.Model(&domain.BandPost{}).
			Where("id = ?", l.PostID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
}

func (r *BandPostRepository) RemoveLike(ctx context.Context, postID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&domain.BandPostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&domain.BandPost{}).
			Where("id = ? AND like_count > 0", postID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
}

func (r *BandPostRepository) LikeExists(ctx context.Context, postID, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BandPostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&n).Error
	return n > 0, err
}

// Votes.

func (r *BandPostRepository) CreateVote(ctx context.Context, v *domain.BandVote) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *BandPostRepository) GetVoteByPost(ctx context.Context, postID int64) (*domain.BandVote, error) {
	var v domain.BandVote
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("band_vote_options.order_index ASC")
		}).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *BandPostRepository) GetVoteOption(ctx context.Context, optionID int64) (*domain.BandVoteOption, error) {
	var o domain.BandVoteOption
	err := r.db.WithContext(ctx).First(&o, optionID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *BandPostRepository) CastChoice(ctx context.Context, c *domain.BandVoteChoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&domain.BandVoteOption{}).
			Where("id = ?", c.OptionID).
			Update("vote_count", gorm.Expr("vote_count + 1")).Error
	})
}

func (r *BandPostRepository) RetractChoice(ctx context.Context, voteID, optionID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("vote_id = ? AND option_id = ? AND user_id = ?", voteID, optionID, userID).
			Delete(&domain.BandVoteChoice{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&domain.BandVoteOption{}).
			Where("id = ? AND vote_count > 0", optionID).
			Update("vote_count", gorm.Expr("vote_count - 1")).Error
	})
}

func (r *BandPostRepository) ListChoicesByUser(ctx context.Context, voteID, userID int64) ([]domain.BandVoteChoice, error) {
	var choices []domain.BandVoteChoice
	err := r.db.WithContext(ctx).
		Where("vote_id = ? AND user_id = ?", voteID, userID).
		Find(&choices).Error
	return choices, err
}
