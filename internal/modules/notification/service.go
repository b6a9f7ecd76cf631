package notification

import (
	"context"
	"fmt"
	"log"

	"badmintok/internal/domain"
)

type Store interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Service persists notifications, pushes them over the hub when the user
// is online, and emails the heavyweight verdicts. Hub and mailer are both
// optional.
type Service struct {
	store  Store
	users  UserLookup
	hub    *Hub
	mailer Mailer
}

func NewService(store Store, users UserLookup, hub *Hub, mailer Mailer) *Service {
	return &Service{store: store, users: users, hub: hub, mailer: mailer}
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int64, error) {
	return s.store.ListByUser(ctx, userID, unreadOnly, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.store.MarkRead(ctx, userID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.store.MarkAllRead(ctx, userID)
}

func (s *Service) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.store.CountUnread(ctx, userID)
}

// deliver stores the notification and pushes it to a live connection.
// Failures are logged and swallowed so the triggering operation never
// rolls back over a notification.
func (s *Service) deliver(ctx context.Context, n *domain.Notification) {
	if err := s.store.Create(ctx, n); err != nil {
		log.Printf("notification: store for user %d failed: %v", n.UserID, err)
		return
	}
	if s.hub != nil {
		s.hub.SendToUser(n.UserID, n)
	}
}

func (s *Service) email(ctx context.Context, userID int64, subject, body string) {
	if s.mailer == nil || s.users == nil {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("notification: lookup user %d failed: %v", userID, err)
		return
	}
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		log.Printf("notification: %v", err)
	}
}

func (s *Service) MemberApproved(ctx context.Context, userID, bandID int64, bandName string) {
	s.deliver(ctx, &domain.Notification{
		UserID:  userID,
		Kind:    domain.NotifyMemberApproved,
		Message: fmt.Sprintf("Your join request for %s was approved.", bandName),
		BandID:  &bandID,
	})
}

func (s *Service) ApplicationApproved(ctx context.Context, userID, scheduleID int64, scheduleTitle string) {
	s.deliver(ctx, &domain.Notification{
		UserID:     userID,
		Kind:       domain.NotifyApplicationApproved,
		Message:    fmt.Sprintf("You are in for %s.", scheduleTitle),
		ScheduleID: &scheduleID,
	})
}

func (s *Service) ApplicationRejected(ctx context.Context, userID, scheduleID int64, scheduleTitle, reason string) {
	s.deliver(ctx, &domain.Notification{
		UserID:     userID,
		Kind:       domain.NotifyApplicationRejected,
		Message:    fmt.Sprintf("Your application for %s was declined: %s", scheduleTitle, reason),
		ScheduleID: &scheduleID,
	})
}

func (s *Service) BandApproved(ctx context.Context, userID, bandID int64, bandName string) {
	s.deliver(ctx, &domain.Notification{
		UserID:  userID,
		Kind:    domain.NotifyBandApproved,
		Message: fmt.Sprintf("%s was approved and is now public.", bandName),
		BandID:  &bandID,
	})
}

func (s *Service) BandRejected(ctx context.Context, userID, bandID int64, bandName, reason string) {
	s.deliver(ctx, &domain.Notification{
		UserID:  userID,
		Kind:    domain.NotifyBandRejected,
		Message: fmt.Sprintf("%s was not approved: %s", bandName, reason),
		BandID:  &bandID,
	})
	s.email(ctx, userID, "Band registration declined",
		fmt.Sprintf("Your band %q was not approved.\n\nReason: %s\n", bandName, reason))
}

func (s *Service) BandDeleted(ctx context.Context, userID, bandID int64, bandName string) {
	s.deliver(ctx, &domain.Notification{
		UserID:  userID,
		Kind:    domain.NotifyBandDeleted,
		Message: fmt.Sprintf("%s has been deleted.", bandName),
		BandID:  &bandID,
	})
	s.email(ctx, userID, "Band deleted",
		fmt.Sprintf("Your band %q has been deleted as requested.\n", bandName))
}
