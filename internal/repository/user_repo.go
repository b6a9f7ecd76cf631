package repository

import (
	"context"
	"strings"
	"time"

	"badmintok/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                       int64      `gorm:"column:id;primaryKey"`
	Email                    string     `gorm:"column:email"`
	PasswordHash             string     `gorm:"column:password_hash"`
	ActivityName             string     `gorm:"column:activity_name"`
	AuthProvider             *string    `gorm:"column:auth_provider"`
	IsActive                 bool       `gorm:"column:is_active"`
	IsAdmin                  bool       `gorm:"column:is_admin"`
	BandCreationBlockedUntil *time.Time `gorm:"column:band_creation_blocked_until"`
	CreatedAt                time.Time  `gorm:"column:created_at"`
	UpdatedAt                time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var provider string
	if m.AuthProvider != nil {
		provider = *m.AuthProvider
	}

	return &domain.User{
		ID:                       m.ID,
		Email:                    m.Email,
		PasswordHash:             m.PasswordHash,
		ActivityName:             m.ActivityName,
		AuthProvider:             domain.AuthProvider(provider),
		IsActive:                 m.IsActive,
		IsAdmin:                  m.IsAdmin,
		BandCreationBlockedUntil: m.BandCreationBlockedUntil,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var provider *string
	if u.AuthProvider != "" {
		v := string(u.AuthProvider)
		provider = &v
	}

	return userModel{
		ID:                       u.ID,
		Email:                    email,
		PasswordHash:             u.PasswordHash,
		ActivityName:             u.ActivityName,
		AuthProvider:             provider,
		IsActive:                 u.IsActive,
		IsAdmin:                  u.IsAdmin,
		BandCreationBlockedUntil: u.BandCreationBlockedUntil,
		CreatedAt:                u.CreatedAt,
		UpdatedAt:                u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

// UpdateActivityName applies a last-write-wins nickname change.
func (r *UserRepository) UpdateActivityName(ctx context.Context, userID int64, name string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("activity_name", name).Error
}

// SetBandCreationBlock marks the user as blocked from creating bands until
// the given time. A nil until lifts the block.
func (r *UserRepository) SetBandCreationBlock(ctx context.Context, userID int64, until *time.Time) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("band_creation_blocked_until", until).Error
}

func (r *UserRepository) Deactivate(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("is_active", false).Error
}

func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("is_active", active).Error
}

func (r *UserRepository) List(ctx context.Context, search string, active *bool, limit, offset int) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&userModel{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(activity_name) LIKE ?", like, like)
	}
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []userModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		u := toDomainUser(m)
		u.PasswordHash = ""
		users = append(users, *u)
	}
	return users, total, nil
}
