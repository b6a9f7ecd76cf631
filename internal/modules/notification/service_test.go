package notification

import (
	"context"
	"errors"
	"testing"

	"badmintok/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockStore) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockStore) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

func (m *mockStore) MarkAllRead(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserLookup struct{ mock.Mock }

func (m *mockUserLookup) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type recordingMailer struct {
	to      []string
	subject []string
	fail    bool
}

func (m *recordingMailer) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.to = append(m.to, to)
	m.subject = append(m.subject, subject)
	return nil
}

func TestBandRejected_StoresAndEmails(t *testing.T) {
	store := new(mockStore)
	users := new(mockUserLookup)
	mailer := &recordingMailer{}

	store.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Kind == domain.NotifyBandRejected && n.UserID == 7 && n.BandID != nil && *n.BandID == 3
	})).Return(nil)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Email: "owner@example.com"}, nil)

	svc := NewService(store, users, nil, mailer)
	svc.BandRejected(context.Background(), 7, 3, "Seoul Shuttlers", "duplicate listing")

	store.AssertExpectations(t)
	assert.Equal(t, []string{"owner@example.com"}, mailer.to)
}

func TestMemberApproved_NoEmail(t *testing.T) {
	store := new(mockStore)
	mailer := &recordingMailer{}

	store.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	svc := NewService(store, new(mockUserLookup), nil, mailer)
	svc.MemberApproved(context.Background(), 7, 3, "Seoul Shuttlers")

	assert.Empty(t, mailer.to)
}

func TestDeliver_MailFailureIsSwallowed(t *testing.T) {
	store := new(mockStore)
	users := new(mockUserLookup)
	mailer := &recordingMailer{fail: true}

	store.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Email: "owner@example.com"}, nil)

	svc := NewService(store, users, nil, mailer)
	// Must not panic or propagate anything.
	svc.BandDeleted(context.Background(), 7, 3, "Seoul Shuttlers")

	store.AssertExpectations(t)
}

func TestHub_ReplacesStaleConnection(t *testing.T) {
	hub := NewHub()
	assert.False(t, hub.IsOnline(1))
	assert.Equal(t, 0, hub.OnlineCount())

	// SendToUser with no registered connection reports unreachable.
	assert.False(t, hub.SendToUser(1, map[string]string{"kind": "test"}))
}
