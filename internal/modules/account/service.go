package account

import (
	"context"
	"errors"
	"strings"

	"badmintok/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users    UserRepository
	profiles ProfileRepository
	support  SupportRepository
	tokens   TokenRevoker
}

func NewService(users UserRepository, profiles ProfileRepository, support SupportRepository, tokens TokenRevoker) *Service {
	return &Service{users: users, profiles: profiles, support: support, tokens: tokens}
}

// GetProfile returns the user's profile, creating an empty one on first
// access.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*domain.User, *domain.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = &domain.Profile{UserID: userID, ProfileImage: domain.DefaultProfileImage}
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.Profile, error) {
	_, profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ActivityName != nil && strings.TrimSpace(*req.ActivityName) != "" {
		if err := s.users.UpdateActivityName(ctx, userID, strings.TrimSpace(*req.ActivityName)); err != nil {
			return nil, err
		}
	}

	if req.Gender != nil {
		profile.Gender = domain.Gender(*req.Gender)
	}
	if req.AgeRange != nil {
		profile.AgeRange = *req.AgeRange
	}
	if req.BirthYear != nil {
		profile.BirthYear = *req.BirthYear
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if req.ShippingReceiver != nil {
		profile.ShippingReceiver = *req.ShippingReceiver
	}
	if req.ShippingPhoneNumber != nil {
		profile.ShippingPhoneNumber = *req.ShippingPhoneNumber
	}
	if req.ShippingAddress != nil {
		profile.ShippingAddress = *req.ShippingAddress
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetRealName records the legal name entered on the dedicated screen. This
// is the only way the name field is ever written.
func (s *Service) SetRealName(ctx context.Context, userID int64, name string) (*domain.Profile, error) {
	_, profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Name = strings.TrimSpace(name)
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !user.HasUsablePassword() {
		return ErrNoPasswordAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	// Other sessions must log in again after a password change.
	return s.tokens.RevokeByUser(ctx, userID)
}

// Deactivate soft-deletes the account and revokes every session.
func (s *Service) Deactivate(ctx context.Context, userID int64) error {
	if err := s.users.Deactivate(ctx, userID); err != nil {
		return err
	}
	return s.tokens.RevokeByUser(ctx, userID)
}

// Blocks.

func (s *Service) BlockUser(ctx context.Context, userID, blockedID int64) error {
	if userID == blockedID {
		return ErrSelfBlock
	}
	exists, err := s.support.BlockExists(ctx, userID, blockedID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyBlocked
	}
	return s.support.AddBlock(ctx, &domain.UserBlock{UserID: userID, BlockedID: blockedID})
}

func (s *Service) UnblockUser(ctx context.Context, userID, blockedID int64) error {
	return s.support.RemoveBlock(ctx, userID, blockedID)
}

func (s *Service) ListBlocks(ctx context.Context, userID int64) ([]domain.UserBlock, error) {
	return s.support.ListBlocks(ctx, userID)
}

// Reports and inquiries.

func (s *Service) ReportUser(ctx context.Context, reporterID int64, req ReportRequest) error {
	return s.support.CreateReport(ctx, &domain.Report{
		ReporterID: reporterID,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Status:     domain.ReportOpen,
	})
}

func (s *Service) CreateInquiry(ctx context.Context, userID int64, req InquiryRequest) (*domain.Inquiry, error) {
	inquiry := &domain.Inquiry{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Status:  domain.InquiryOpen,
	}
	if err := s.support.CreateInquiry(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *Service) ListMyInquiries(ctx context.Context, userID int64, limit, offset int) ([]domain.Inquiry, int64, error) {
	return s.support.ListInquiries(ctx, userID, limit, offset)
}
