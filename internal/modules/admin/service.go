package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"

	"gorm.io/gorm"
)

// A creator whose band gets deleted sits out this long before they may
// register another one.
const creationBlockAfterDeletion = 7 * 24 * time.Hour

type Service struct {
	bands    BandRepository
	users    UserRepository
	support  SupportRepository
	stats    StatsRepository
	tokens   TokenRevoker
	notifier NotificationSender
}

func NewService(
	bands BandRepository,
	users UserRepository,
	support SupportRepository,
	stats StatsRepository,
	tokens TokenRevoker,
	notifier NotificationSender,
) *Service {
	return &Service{
		bands:    bands,
		users:    users,
		support:  support,
		stats:    stats,
		tokens:   tokens,
		notifier: notifier,
	}
}

// Band moderation.

func (s *Service) ListPendingBands(ctx context.Context, limit, offset int) ([]domain.Band, int64, error) {
	return s.bands.ListPendingApproval(ctx, limit, offset)
}

func (s *Service) ApproveBand(ctx context.Context, bandID, adminID int64) (*domain.Band, error) {
	band, err := s.loadBand(ctx, bandID)
	if err != nil {
		return nil, err
	}
	if band.IsApproved {
		return nil, ErrNotPendingBand
	}

	now := time.Now()
	band.IsApproved = true
	band.IsPublic = true
	band.RejectionReason = ""
	band.ApprovedAt = &now
	band.ApprovedByID = &adminID
	if err := s.bands.Save(ctx, band); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BandApproved(ctx, band.CreatedByID, band.ID, band.Name)
	}
	return band, nil
}

func (s *Service) RejectBand(ctx context.Context, bandID, adminID int64, reason string) (*domain.Band, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	band, err := s.loadBand(ctx, bandID)
	if err != nil {
		return nil, err
	}
	if band.IsApproved {
		return nil, ErrNotPendingBand
	}

	band.RejectionReason = reason
	band.ApprovedByID = &adminID
	if err := s.bands.Save(ctx, band); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.BandRejected(ctx, band.CreatedByID, band.ID, band.Name, reason)
	}
	return band, nil
}

// Deletion protocol, step two.

func (s *Service) ListDeletionRequests(ctx context.Context, limit, offset int) ([]domain.Band, int64, error) {
	return s.bands.ListDeletionRequested(ctx, limit, offset)
}

// ApproveDeletion removes the band and everything under it, then blocks
// the creator from starting a new band for a week.
func (s *Service) ApproveDeletion(ctx context.Context, bandID, adminID int64) error {
	band, err := s.loadBand(ctx, bandID)
	if err != nil {
		return err
	}
	if !band.DeletionRequested || band.DeletionApprovedAt != nil {
		return ErrNoDeletionTicket
	}

	now := time.Now()
	band.DeletionApprovedAt = &now
	band.DeletionApprovedByID = &adminID
	if err := s.bands.Save(ctx, band); err != nil {
		return err
	}

	if err := s.bands.Delete(ctx, bandID); err != nil {
		return err
	}

	blockedUntil := now.Add(creationBlockAfterDeletion)
	if err := s.users.SetBandCreationBlock(ctx, band.CreatedByID, &blockedUntil); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.BandDeleted(ctx, band.CreatedByID, band.ID, band.Name)
	}
	return nil
}

// User moderation.

func (s *Service) ListUsers(ctx context.Context, f UserListFilter, limit, offset int) ([]domain.User, int64, error) {
	return s.users.List(ctx, f.Query, f.Active, limit, offset)
}

// BlockUser deactivates the account and kills every live session.
func (s *Service) BlockUser(ctx context.Context, userID int64) error {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return err
	}
	if err := s.users.SetActive(ctx, userID, false); err != nil {
		return err
	}
	if s.tokens != nil {
		if err := s.tokens.RevokeByUser(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) UnblockUser(ctx context.Context, userID int64) error {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return err
	}
	return s.users.SetActive(ctx, userID, true)
}

// Dashboard and support.

func (s *Service) Statistics(ctx context.Context) (*repository.PlatformStats, error) {
	return s.stats.Collect(ctx)
}

func (s *Service) ListOpenReports(ctx context.Context, limit, offset int) ([]domain.Report, int64, error) {
	return s.support.ListOpenReports(ctx, limit, offset)
}

func (s *Service) ResolveReport(ctx context.Context, reportID int64) error {
	return s.support.ResolveReport(ctx, reportID)
}

func (s *Service) ListInquiries(ctx context.Context, limit, offset int) ([]domain.Inquiry, int64, error) {
	return s.support.ListInquiries(ctx, 0, limit, offset)
}

func (s *Service) AnswerInquiry(ctx context.Context, inquiryID int64, answer string) error {
	return s.support.AnswerInquiry(ctx, inquiryID, answer)
}

func (s *Service) loadBand(ctx context.Context, bandID int64) (*domain.Band, error) {
	band, err := s.bands.GetByID(ctx, bandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBandNotFound
		}
		return nil, err
	}
	return band, nil
}

func (s *Service) loadUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
