package schedule

import (
	"context"
	"errors"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"

	"gorm.io/gorm"
)

// Service runs band schedules and the application workflow around them.
// Capacity is enforced by a conditional update in the repository, so two
// concurrent approvals can never oversell the last slot.
type Service struct {
	schedules ScheduleRepository
	members   MemberStore
	notifier  NotificationSender
}

func NewService(schedules ScheduleRepository, members MemberStore, notifier NotificationSender) *Service {
	return &Service{schedules: schedules, members: members, notifier: notifier}
}

func (s *Service) CreateSchedule(ctx context.Context, bandID, actorID int64, req CreateScheduleRequest) (*domain.BandSchedule, error) {
	if err := s.requireManageRole(ctx, bandID, actorID); err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, req.StartDatetime)
	if err != nil {
		return nil, err
	}

	sched := &domain.BandSchedule{
		BandID:           bandID,
		Title:            req.Title,
		Description:      req.Description,
		StartDatetime:    start,
		Location:         req.Location,
		MaxParticipants:  req.MaxParticipants,
		RequiresApproval: req.RequiresApproval,
		BankAccount:      req.BankAccount,
		CreatedByID:      actorID,
	}
	if req.EndDatetime != nil {
		if end, err := time.Parse(time.RFC3339, *req.EndDatetime); err == nil {
			sched.EndDatetime = &end
		}
	}
	if req.ApplicationDeadline != nil {
		if deadline, err := time.Parse(time.RFC3339, *req.ApplicationDeadline); err == nil {
			sched.ApplicationDeadline = &deadline
		}
	}

	if err := s.schedules.Create(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *Service) ListSchedules(ctx context.Context, bandID, callerID int64, upcomingOnly bool, limit, offset int) ([]domain.BandSchedule, int64, error) {
	if _, err := s.requireActiveMember(ctx, bandID, callerID); err != nil {
		return nil, 0, err
	}
	return s.schedules.ListByBand(ctx, bandID, upcomingOnly, limit, offset)
}

func (s *Service) GetSchedule(ctx context.Context, bandID, scheduleID, callerID int64) (*domain.BandSchedule, error) {
	if _, err := s.requireActiveMember(ctx, bandID, callerID); err != nil {
		return nil, err
	}
	return s.loadSchedule(ctx, bandID, scheduleID)
}

func (s *Service) UpdateSchedule(ctx context.Context, bandID, scheduleID, actorID int64, req UpdateScheduleRequest) (*domain.BandSchedule, error) {
	if err := s.requireManageRole(ctx, bandID, actorID); err != nil {
		return nil, err
	}

	sched, err := s.loadSchedule(ctx, bandID, scheduleID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		sched.Title = *req.Title
	}
	if req.Description != nil {
		sched.Description = *req.Description
	}
	if req.StartDatetime != nil {
		if start, err := time.Parse(time.RFC3339, *req.StartDatetime); err == nil {
			sched.StartDatetime = start
		}
	}
	if req.EndDatetime != nil {
		if end, err := time.Parse(time.RFC3339, *req.EndDatetime); err == nil {
			sched.EndDatetime = &end
		}
	}
	if req.Location != nil {
		sched.Location = *req.Location
	}
	if req.MaxParticipants != nil {
		sched.MaxParticipants = *req.MaxParticipants
	}
	if req.ApplicationDeadline != nil {
		if deadline, err := time.Parse(time.RFC3339, *req.ApplicationDeadline); err == nil {
			sched.ApplicationDeadline = &deadline
		}
	}
	if req.BankAccount != nil {
		sched.BankAccount = *req.BankAccount
	}
	if req.IsClosed != nil {
		sched.IsClosed = *req.IsClosed
	}

	if err := s.schedules.Save(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, bandID, scheduleID, actorID int64) error {
	if err := s.requireManageRole(ctx, bandID, actorID); err != nil {
		return err
	}
	if _, err := s.loadSchedule(ctx, bandID, scheduleID); err != nil {
		return err
	}
	return s.schedules.Delete(ctx, scheduleID)
}

// Apply submits or resurrects the caller's application. One row exists per
// (schedule, user); rejected and cancelled rows go back to pending instead
// of creating a second row.
func (s *Service) Apply(ctx context.Context, bandID, scheduleID, userID int64, notes string) (*domain.BandScheduleApplication, error) {
	if _, err := s.requireActiveMember(ctx, bandID, userID); err != nil {
		return nil, err
	}

	sched, err := s.loadSchedule(ctx, bandID, scheduleID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if sched.IsClosed {
		return nil, ErrScheduleClosed
	}
	if sched.DeadlinePassed(now) {
		return nil, ErrDeadlinePassed
	}

	existing, err := s.schedules.GetApplicationByUser(ctx, scheduleID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		switch existing.Status {
		case domain.ApplicationPending, domain.ApplicationApproved:
			return nil, ErrAlreadyApplied
		}

		existing.Status = domain.ApplicationPending
		existing.Notes = notes
		existing.RejectionReason = ""
		existing.AppliedAt = now
		existing.ReviewedAt = nil
		existing.ReviewedByID = nil
		if err := s.schedules.SaveApplication(ctx, existing); err != nil {
			return nil, err
		}
		if !sched.RequiresApproval {
			if err := s.autoApprove(ctx, sched, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	app := &domain.BandScheduleApplication{
		ScheduleID: scheduleID,
		UserID:     userID,
		Status:     domain.ApplicationPending,
		Notes:      notes,
		AppliedAt:  now,
	}
	if err := s.schedules.CreateApplication(ctx, app); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	if !sched.RequiresApproval {
		if err := s.autoApprove(ctx, sched, app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// autoApprove claims a slot for a schedule that skips manual review. The
// application stays pending when the schedule turns out to be full.
func (s *Service) autoApprove(ctx context.Context, sched *domain.BandSchedule, app *domain.BandScheduleApplication) error {
	now := time.Now()
	app.Status = domain.ApplicationApproved
	app.ReviewedAt = &now

	reserved, err := s.schedules.SaveApproval(ctx, app)
	if err != nil {
		return err
	}
	if !reserved {
		app.Status = domain.ApplicationPending
		app.ReviewedAt = nil
		return ErrScheduleFull
	}
	return nil
}

func (s *Service) ApproveApplication(ctx context.Context, bandID, applicationID, actorID int64) error {
	if err := s.requireManageRole(ctx, bandID, actorID); err != nil {
		return err
	}

	app, sched, err := s.loadApplication(ctx, bandID, applicationID)
	if err != nil {
		return err
	}
	if app.Status != domain.ApplicationPending {
		return ErrNotPending
	}

	now := time.Now()
	app.Status = domain.ApplicationApproved
	app.ReviewedAt = &now
	app.ReviewedByID = &actorID

	reserved, err := s.schedules.SaveApproval(ctx, app)
	if err != nil {
		return err
	}
	if !reserved {
		app.Status = domain.ApplicationPending
		app.ReviewedAt = nil
		app.ReviewedByID = nil
		return ErrScheduleFull
	}

	if s.notifier != nil {
		s.notifier.ApplicationApproved(ctx, app.UserID, sched.ID, sched.Title)
	}
	return nil
}

func (s *Service) RejectApplication(ctx context.Context, bandID, applicationID, actorID int64, reason string) error {
	if err := s.requireManageRole(ctx, bandID, actorID); err != nil {
		return err
	}

	app, sched, err := s.loadApplication(ctx, bandID, applicationID)
	if err != nil {
		return err
	}
	if app.Status != domain.ApplicationPending {
		return ErrNotPending
	}

	now := time.Now()
	app.Status = domain.ApplicationRejected
	app.RejectionReason = reason
	app.ReviewedAt = &now
	app.ReviewedByID = &actorID
	if err := s.schedules.SaveApplication(ctx, app); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.ApplicationRejected(ctx, app.UserID, sched.ID, sched.Title, reason)
	}
	return nil
}

// CancelApplication withdraws the caller's own application. Cancelling an
// approved one frees its slot.
func (s *Service) CancelApplication(ctx context.Context, bandID, scheduleID, userID int64) error {
	app, err := s.schedules.GetApplicationByUser(ctx, scheduleID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}

	sched, err := s.loadSchedule(ctx, bandID, scheduleID)
	if err != nil {
		return err
	}
	if app.ScheduleID != sched.ID {
		return ErrApplicationNotFound
	}

	wasApproved := app.Status == domain.ApplicationApproved
	if app.Status != domain.ApplicationPending && !wasApproved {
		return ErrApplicationNotFound
	}

	app.Status = domain.ApplicationCancelled
	return s.schedules.SaveCancellation(ctx, app, wasApproved)
}

func (s *Service) ListApplications(ctx context.Context, bandID, scheduleID, actorID int64, status domain.ApplicationStatus) ([]domain.BandScheduleApplication, error) {
	if err := s.requireManageRole(ctx, bandID, actorID); err != nil {
		return nil, err
	}
	if _, err := s.loadSchedule(ctx, bandID, scheduleID); err != nil {
		return nil, err
	}
	return s.schedules.ListApplications(ctx, scheduleID, status)
}

func (s *Service) MyApplications(ctx context.Context, userID int64, limit, offset int) ([]domain.BandScheduleApplication, int64, error) {
	return s.schedules.ListUserApplications(ctx, userID, limit, offset)
}

func (s *Service) loadSchedule(ctx context.Context, bandID, scheduleID int64) (*domain.BandSchedule, error) {
	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil || sched.BandID != bandID {
		return nil, ErrScheduleNotFound
	}
	return sched, nil
}

func (s *Service) loadApplication(ctx context.Context, bandID, applicationID int64) (*domain.BandScheduleApplication, *domain.BandSchedule, error) {
	app, err := s.schedules.GetApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrApplicationNotFound
		}
		return nil, nil, err
	}

	sched, err := s.loadSchedule(ctx, bandID, app.ScheduleID)
	if err != nil {
		return nil, nil, ErrApplicationNotFound
	}
	return app, sched, nil
}

func (s *Service) requireActiveMember(ctx context.Context, bandID, userID int64) (*domain.BandMember, error) {
	member, err := s.members.GetMember(ctx, bandID, userID)
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

func (s *Service) requireManageRole(ctx context.Context, bandID, actorID int64) error {
	member, err := s.requireActiveMember(ctx, bandID, actorID)
	if err != nil {
		return err
	}
	if !member.Role.CanManage() {
		return ErrForbidden
	}
	return nil
}
