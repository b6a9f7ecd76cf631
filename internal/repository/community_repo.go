package repository

import (
	"context"
	"time"

	"badmintok/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// PostFilter narrows down post listings.
type PostFilter struct {
	Source     domain.PostSource
	CategoryID *int64
	AuthorID   int64
	Search     string
	Limit      int
	Offset     int
}

// Categories.

func (r *CommunityRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommunityRepository) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommunityRepository) ListCategories(ctx context.Context, source domain.PostSource) ([]domain.Category, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if source != "" {
		q = q.Where("source = ?", source)
	}

	var cats []domain.Category
	err := q.Order(`"order" ASC, id ASC`).Find(&cats).Error
	return cats, err
}

// Posts.

func (r *CommunityRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CommunityRepository) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Preload("Images").
		Preload("Category").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CommunityRepository) SavePost(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// SoftDeletePost keeps the row so comment threads stay consistent.
func (r *CommunityRepository) SoftDeletePost(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (r *CommunityRepository) ListPosts(ctx context.Context, f PostFilter) ([]domain.Post, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("is_deleted = ? AND is_draft = ?", false, false)

	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []domain.Post
	q = q.Preload("Category").Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListHotPosts ranks recent posts by engagement. The score is
// view_count + like_count*2 + comment_count*3, multiplied by 1.5 for posts
// published within the last week. Only posts from the last 30 days compete.
func (r *CommunityRepository) ListHotPosts(ctx context.Context, source domain.PostSource, limit int) ([]domain.Post, error) {
	now := time.Now()
	monthAgo := now.AddDate(0, 0, -30)
	weekAgo := now.AddDate(0, 0, -7)

	q := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("is_deleted = ? AND is_draft = ?", false, false).
		Where("published_at IS NOT NULL AND published_at >= ?", monthAgo)
	if source != "" {
		q = q.Where("source = ?", source)
	}

	var posts []domain.Post
	err := q.
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "(view_count + like_count * 2 + comment_count * 3) * (CASE WHEN published_at >= ? THEN 1.5 ELSE 1.0 END) DESC",
			Vars: []interface{}{weekAgo},
		}}).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *CommunityRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// Images.

func (r *CommunityRepository) AddPostImage(ctx context.Context, img *domain.PostImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *CommunityRepository) DeletePostImages(ctx context.Context, postID int64) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&domain.PostImage{}).Error
}

// Comments.

func (r *CommunityRepository) CreateComment(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Post{}).
			Where("id = ?", c.PostID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

func (r *CommunityRepository) GetComment(ctx context.Context, id int64) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).Where("is_deleted = ?", false).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SoftDeleteComment keeps replies attached to a tombstone row.
func (r *CommunityRepository) SoftDeleteComment(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Comment{}).
			Where("id = ?", c.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Post{}).
			Where("id = ? AND comment_count > 0", c.PostID).
			Update("comment_count", gorm.Expr("comment_count - 1")).Error
	})
}

func (r *CommunityRepository) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// Likes.

func (r *CommunityRepository) AddLike(ctx context.Context, l *domain.PostLike) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Post{}).
			Where("id = ?", l.PostID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
}

func (r *CommunityRepository) RemoveLike(ctx context.Context, postID, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&domain.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&domain.Post{}).
			Where("id = ? AND like_count > 0", postID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
}

func (r *CommunityRepository) LikeExists(ctx context.Context, postID, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&n).Error
	return n > 0, err
}
