package band

import (
	"context"
	"errors"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"

	"gorm.io/gorm"
)

// Service implements the band lifecycle: creation with moderation, the
// membership state machine, bookmarks and the two-step deletion protocol.
type Service struct {
	bands    BandRepository
	users    UserRepository
	notifier NotificationSender
}

func NewService(bands BandRepository, users UserRepository, notifier NotificationSender) *Service {
	return &Service{bands: bands, users: users, notifier: notifier}
}

func (s *Service) CreateBand(ctx context.Context, userID int64, req CreateBandRequest) (*domain.Band, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.BandCreationBlocked(time.Now()) {
		return nil, ErrCreationBlocked
	}

	bandType := domain.BandType(req.BandType)
	band := &domain.Band{
		Name:                 req.Name,
		Description:          req.Description,
		DetailedDescription:  req.DetailedDescription,
		BandType:             bandType,
		Region:               domain.Region(req.Region),
		JoinApprovalRequired: req.JoinApprovalRequired,
		CoverImage:           req.CoverImage,
		ProfileImage:         req.ProfileImage,
		CreatedByID:          userID,
	}

	// Flash meetups go live immediately; group/club wait for moderation.
	if bandType.RequiresApproval() {
		band.IsApproved = false
		band.IsPublic = false
	} else {
		now := time.Now()
		band.IsApproved = true
		band.IsPublic = true
		band.ApprovedAt = &now
	}

	if err := s.bands.Create(ctx, band); err != nil {
		return nil, err
	}

	member := &domain.BandMember{
		BandID: band.ID,
		UserID: userID,
		Role:   domain.RoleOwner,
		Status: domain.MemberActive,
	}
	if err := s.bands.AddMember(ctx, member); err != nil {
		return nil, err
	}

	return band, nil
}

func (s *Service) ListBands(ctx context.Context, f repository.BandFilter) ([]domain.Band, int64, error) {
	f.VisibleOnly = true
	return s.bands.List(ctx, f)
}

type BandDetail struct {
	Band        *domain.Band        `json:"band"`
	MemberCount int64               `json:"member_count"`
	MyRole      domain.BandRole     `json:"my_role,omitempty"`
	MyStatus    domain.MemberStatus `json:"my_status,omitempty"`
}

// GetBand returns the detail view. Invisible bands are only shown to their
// members and their creator.
func (s *Service) GetBand(ctx context.Context, bandID, callerID int64) (*BandDetail, error) {
	band, err := s.bands.GetByID(ctx, bandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBandNotFound
		}
		return nil, err
	}

	detail := &BandDetail{Band: band}
	member, err := s.bands.GetMember(ctx, bandID, callerID)
	if err == nil {
		detail.MyRole = member.Role
		detail.MyStatus = member.Status
		if member.Status == domain.MemberActive {
			_ = s.bands.TouchMemberVisit(ctx, bandID, callerID, time.Now())
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if !band.Visible() && band.CreatedByID != callerID && detail.MyStatus != domain.MemberActive {
		return nil, ErrBandNotFound
	}

	count, err := s.bands.CountActiveMembers(ctx, bandID)
	if err != nil {
		return nil, err
	}
	detail.MemberCount = count

	return detail, nil
}

func (s *Service) UpdateBand(ctx context.Context, bandID, actorID int64, req UpdateBandRequest) (*domain.Band, error) {
	band, err := s.requireManageRole(ctx, bandID, actorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		band.Name = *req.Name
	}
	if req.Description != nil {
		band.Description = *req.Description
	}
	if req.DetailedDescription != nil {
		band.DetailedDescription = *req.DetailedDescription
	}
	if req.Region != nil {
		band.Region = domain.Region(*req.Region)
	}
	if req.JoinApprovalRequired != nil {
		band.JoinApprovalRequired = *req.JoinApprovalRequired
	}
	if req.CoverImage != nil {
		band.CoverImage = *req.CoverImage
	}
	if req.ProfileImage != nil {
		band.ProfileImage = *req.ProfileImage
	}

	if err := s.bands.Save(ctx, band); err != nil {
		return nil, err
	}
	return band, nil
}

// Join moves a user into the membership state machine. Existing rows keep
// their state and yield a state-specific error.
func (s *Service) Join(ctx context.Context, bandID, userID int64) (*domain.BandMember, error) {
	band, err := s.bands.GetByID(ctx, bandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBandNotFound
		}
		return nil, err
	}
	if !band.Visible() {
		return nil, ErrBandNotFound
	}

	existing, err := s.bands.GetMember(ctx, bandID, userID)
	if err == nil {
		switch existing.Status {
		case domain.MemberActive:
			return nil, ErrAlreadyMember
		case domain.MemberPending:
			return nil, ErrJoinPending
		case domain.MemberBanned:
			return nil, ErrBannedFromBand
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status := domain.MemberActive
	if band.JoinApprovalRequired {
		status = domain.MemberPending
	}

	member := &domain.BandMember{
		BandID: bandID,
		UserID: userID,
		Role:   domain.RoleMember,
		Status: status,
	}
	if err := s.bands.AddMember(ctx, member); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	return member, nil
}

func (s *Service) Leave(ctx context.Context, bandID, userID int64) error {
	member, err := s.bands.GetMember(ctx, bandID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotMember
		}
		return err
	}
	if member.Role == domain.RoleOwner {
		return ErrOwnerCannotLeave
	}
	return s.bands.RemoveMember(ctx, bandID, userID)
}

func (s *Service) ApproveMember(ctx context.Context, bandID, actorID, memberUserID int64) error {
	band, err := s.requireManageRole(ctx, bandID, actorID)
	if err != nil {
		return err
	}

	member, err := s.bands.GetMember(ctx, bandID, memberUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if member.Status != domain.MemberPending {
		return ErrMemberNotFound
	}

	member.Status = domain.MemberActive
	if err := s.bands.SaveMember(ctx, member); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.MemberApproved(ctx, memberUserID, bandID, band.Name)
	}
	return nil
}

func (s *Service) RejectMember(ctx context.Context, bandID, actorID, memberUserID int64) error {
	if _, err := s.requireManageRole(ctx, bandID, actorID); err != nil {
		return err
	}

	member, err := s.bands.GetMember(ctx, bandID, memberUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if member.Status != domain.MemberPending {
		return ErrMemberNotFound
	}
	return s.bands.RemoveMember(ctx, bandID, memberUserID)
}

func (s *Service) BanMember(ctx context.Context, bandID, actorID, memberUserID int64) error {
	if _, err := s.requireManageRole(ctx, bandID, actorID); err != nil {
		return err
	}

	member, err := s.bands.GetMember(ctx, bandID, memberUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if member.Role == domain.RoleOwner {
		return ErrForbidden
	}

	member.Status = domain.MemberBanned
	member.Role = domain.RoleMember
	return s.bands.SaveMember(ctx, member)
}

func (s *Service) ListMembers(ctx context.Context, bandID, callerID int64, status domain.MemberStatus) ([]domain.BandMember, error) {
	// Pending/banned lists are management-only; the active roster is
	// visible to every active member.
	if status == domain.MemberActive || status == "" {
		if _, err := s.requireActiveMember(ctx, bandID, callerID); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.requireManageRole(ctx, bandID, callerID); err != nil {
			return nil, err
		}
	}
	return s.bands.ListMembers(ctx, bandID, status)
}

func (s *Service) MyBands(ctx context.Context, userID int64) ([]domain.Band, error) {
	return s.bands.ListUserBands(ctx, userID)
}

// RequestDeletion is step one of the deletion protocol; an admin has to
// approve it before anything is removed.
func (s *Service) RequestDeletion(ctx context.Context, bandID, actorID int64, reason string) error {
	band, err := s.requireManageRole(ctx, bandID, actorID)
	if err != nil {
		return err
	}
	if band.DeletionRequested {
		return ErrDeletionAlreadyRequested
	}

	now := time.Now()
	band.DeletionRequested = true
	band.DeletionReason = reason
	band.DeletionRequestedAt = &now
	return s.bands.Save(ctx, band)
}

// Bookmarks.

func (s *Service) AddBookmark(ctx context.Context, bandID, userID int64) error {
	band, err := s.bands.GetByID(ctx, bandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBandNotFound
		}
		return err
	}
	if !band.Visible() {
		return ErrBandNotFound
	}

	if err := s.bands.AddBookmark(ctx, &domain.BandBookmark{BandID: bandID, UserID: userID}); err != nil {
		if repository.IsDuplicate(err) {
			return ErrBookmarkExists
		}
		return err
	}
	return nil
}

func (s *Service) RemoveBookmark(ctx context.Context, bandID, userID int64) error {
	if err := s.bands.RemoveBookmark(ctx, bandID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookmarkNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListBookmarks(ctx context.Context, userID int64, limit, offset int) ([]domain.BandBookmark, int64, error) {
	return s.bands.ListBookmarks(ctx, userID, limit, offset)
}

// requireActiveMember loads the caller's membership and checks it is active.
func (s *Service) requireActiveMember(ctx context.Context, bandID, userID int64) (*domain.BandMember, error) {
	member, err := s.bands.GetMember(ctx, bandID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	if member.Status != domain.MemberActive {
		return nil, ErrNotMember
	}
	return member, nil
}

// requireManageRole checks the caller is an active owner/admin and returns
// the band.
func (s *Service) requireManageRole(ctx context.Context, bandID, actorID int64) (*domain.Band, error) {
	band, err := s.bands.GetByID(ctx, bandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBandNotFound
		}
		return nil, err
	}

	member, err := s.requireActiveMember(ctx, bandID, actorID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanManage() {
		return nil, ErrForbidden
	}
	return band, nil
}
