package admin

import (
	"context"
	"testing"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAdminBandRepo struct{ mock.Mock }

func (m *mockAdminBandRepo) GetByID(ctx context.Context, id int64) (*domain.Band, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Band), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdminBandRepo) Save(ctx context.Context, b *domain.Band) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockAdminBandRepo) Delete(ctx context.Context, bandID int64) error {
	return m.Called(ctx, bandID).Error(0)
}

func (m *mockAdminBandRepo) ListPendingApproval(ctx context.Context, limit, offset int) ([]domain.Band, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Band), args.Get(1).(int64), args.Error(2)
}

func (m *mockAdminBandRepo) ListDeletionRequested(ctx context.Context, limit, offset int) ([]domain.Band, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Band), args.Get(1).(int64), args.Error(2)
}

type mockAdminUserRepo struct{ mock.Mock }

func (m *mockAdminUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAdminUserRepo) List(ctx context.Context, search string, active *bool, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, search, active, limit, offset)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockAdminUserRepo) SetActive(ctx context.Context, userID int64, active bool) error {
	return m.Called(ctx, userID, active).Error(0)
}

func (m *mockAdminUserRepo) SetBandCreationBlock(ctx context.Context, userID int64, until *time.Time) error {
	return m.Called(ctx, userID, until).Error(0)
}

type mockAdminNotifier struct{ mock.Mock }

func (m *mockAdminNotifier) BandApproved(ctx context.Context, userID, bandID int64, bandName string) {
	m.Called(ctx, userID, bandID, bandName)
}

func (m *mockAdminNotifier) BandRejected(ctx context.Context, userID, bandID int64, bandName, reason string) {
	m.Called(ctx, userID, bandID, bandName, reason)
}

func (m *mockAdminNotifier) BandDeleted(ctx context.Context, userID, bandID int64, bandName string) {
	m.Called(ctx, userID, bandID, bandName)
}

type mockRevoker struct{ mock.Mock }

func (m *mockRevoker) RevokeByUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type stubStats struct{}

func (stubStats) Collect(ctx context.Context) (*repository.PlatformStats, error) {
	return &repository.PlatformStats{}, nil
}

func TestApproveBand_PublishesAndNotifies(t *testing.T) {
	bands := new(mockAdminBandRepo)
	notifier := new(mockAdminNotifier)

	band := &domain.Band{ID: 3, Name: "Seoul Shuttlers", CreatedByID: 7, RejectionReason: "resubmitted"}
	bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)
	bands.On("Save", mock.Anything, mock.MatchedBy(func(b *domain.Band) bool {
		return b.IsApproved && b.IsPublic && b.RejectionReason == "" &&
			b.ApprovedAt != nil && b.ApprovedByID != nil && *b.ApprovedByID == 99
	})).Return(nil)
	notifier.On("BandApproved", mock.Anything, int64(7), int64(3), "Seoul Shuttlers").Return()

	svc := NewService(bands, new(mockAdminUserRepo), nil, stubStats{}, nil, notifier)
	approved, err := svc.ApproveBand(context.Background(), 3, 99)

	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	notifier.AssertExpectations(t)
}

func TestApproveBand_AlreadyApproved(t *testing.T) {
	bands := new(mockAdminBandRepo)

	bands.On("GetByID", mock.Anything, int64(3)).Return(&domain.Band{ID: 3, IsApproved: true}, nil)

	svc := NewService(bands, new(mockAdminUserRepo), nil, stubStats{}, nil, nil)
	_, err := svc.ApproveBand(context.Background(), 3, 99)

	assert.ErrorIs(t, err, ErrNotPendingBand)
}

func TestRejectBand_RequiresReason(t *testing.T) {
	svc := NewService(new(mockAdminBandRepo), new(mockAdminUserRepo), nil, stubStats{}, nil, nil)

	_, err := svc.RejectBand(context.Background(), 3, 99, "   ")
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestApproveDeletion_CascadesAndBlocksCreator(t *testing.T) {
	bands := new(mockAdminBandRepo)
	users := new(mockAdminUserRepo)
	notifier := new(mockAdminNotifier)

	band := &domain.Band{ID: 3, Name: "Seoul Shuttlers", CreatedByID: 7, DeletionRequested: true}
	bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)
	bands.On("Save", mock.Anything, mock.MatchedBy(func(b *domain.Band) bool {
		return b.DeletionApprovedAt != nil && b.DeletionApprovedByID != nil && *b.DeletionApprovedByID == 99
	})).Return(nil)
	bands.On("Delete", mock.Anything, int64(3)).Return(nil)
	users.On("SetBandCreationBlock", mock.Anything, int64(7), mock.MatchedBy(func(until *time.Time) bool {
		if until == nil {
			return false
		}
		d := time.Until(*until)
		return d > 6*24*time.Hour && d <= 7*24*time.Hour
	})).Return(nil)
	notifier.On("BandDeleted", mock.Anything, int64(7), int64(3), "Seoul Shuttlers").Return()

	svc := NewService(bands, users, nil, stubStats{}, nil, notifier)
	err := svc.ApproveDeletion(context.Background(), 3, 99)

	require.NoError(t, err)
	bands.AssertExpectations(t)
	users.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestApproveDeletion_NeedsOpenTicket(t *testing.T) {
	bands := new(mockAdminBandRepo)

	now := time.Now()
	cases := []*domain.Band{
		{ID: 3, DeletionRequested: false},
		{ID: 3, DeletionRequested: true, DeletionApprovedAt: &now},
	}
	for _, band := range cases {
		bands.ExpectedCalls = nil
		bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)

		svc := NewService(bands, new(mockAdminUserRepo), nil, stubStats{}, nil, nil)
		err := svc.ApproveDeletion(context.Background(), 3, 99)
		assert.ErrorIs(t, err, ErrNoDeletionTicket)
	}
}

func TestBlockUser_RevokesSessions(t *testing.T) {
	users := new(mockAdminUserRepo)
	revoker := new(mockRevoker)

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
	users.On("SetActive", mock.Anything, int64(7), false).Return(nil)
	revoker.On("RevokeByUser", mock.Anything, int64(7)).Return(nil)

	svc := NewService(new(mockAdminBandRepo), users, nil, stubStats{}, revoker, nil)
	err := svc.BlockUser(context.Background(), 7)

	require.NoError(t, err)
	revoker.AssertExpectations(t)
}
