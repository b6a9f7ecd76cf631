package band

import (
	"context"
	"testing"
	"time"

	"badmintok/internal/domain"
	"badmintok/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockBandRepo struct{ mock.Mock }

func (m *mockBandRepo) Create(ctx context.Context, b *domain.Band) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 1
	}
	return args.Error(0)
}

func (m *mockBandRepo) GetByID(ctx context.Context, id int64) (*domain.Band, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Band), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBandRepo) Save(ctx context.Context, b *domain.Band) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBandRepo) List(ctx context.Context, f repository.BandFilter) ([]domain.Band, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Band), args.Get(1).(int64), args.Error(2)
}

func (m *mockBandRepo) AddMember(ctx context.Context, mem *domain.BandMember) error {
	return m.Called(ctx, mem).Error(0)
}

func (m *mockBandRepo) GetMember(ctx context.Context, bandID, userID int64) (*domain.BandMember, error) {
	args := m.Called(ctx, bandID, userID)
	if mem := args.Get(0); mem != nil {
		return mem.(*domain.BandMember), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBandRepo) SaveMember(ctx context.Context, mem *domain.BandMember) error {
	return m.Called(ctx, mem).Error(0)
}

func (m *mockBandRepo) RemoveMember(ctx context.Context, bandID, userID int64) error {
	return m.Called(ctx, bandID, userID).Error(0)
}

func (m *mockBandRepo) ListMembers(ctx context.Context, bandID int64, status domain.MemberStatus) ([]domain.BandMember, error) {
	args := m.Called(ctx, bandID, status)
	return args.Get(0).([]domain.BandMember), args.Error(1)
}

func (m *mockBandRepo) CountActiveMembers(ctx context.Context, bandID int64) (int64, error) {
	args := m.Called(ctx, bandID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBandRepo) ListUserBands(ctx context.Context, userID int64) ([]domain.Band, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Band), args.Error(1)
}

func (m *mockBandRepo) TouchMemberVisit(ctx context.Context, bandID, userID int64, at time.Time) error {
	return m.Called(ctx, bandID, userID, at).Error(0)
}

func (m *mockBandRepo) AddBookmark(ctx context.Context, b *domain.BandBookmark) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBandRepo) RemoveBookmark(ctx context.Context, bandID, userID int64) error {
	return m.Called(ctx, bandID, userID).Error(0)
}

func (m *mockBandRepo) ListBookmarks(ctx context.Context, userID int64, limit, offset int) ([]domain.BandBookmark, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.BandBookmark), args.Get(1).(int64), args.Error(2)
}

type mockBandUserRepo struct{ mock.Mock }

func (m *mockBandUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) MemberApproved(ctx context.Context, userID, bandID int64, bandName string) {
	m.Called(ctx, userID, bandID, bandName)
}

func TestCreateBand_FlashIsLiveImmediately(t *testing.T) {
	bands := new(mockBandRepo)
	users := new(mockBandUserRepo)

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
	bands.On("Create", mock.Anything, mock.AnythingOfType("*domain.Band")).Return(nil)
	bands.On("AddMember", mock.Anything, mock.MatchedBy(func(m *domain.BandMember) bool {
		return m.Role == domain.RoleOwner && m.Status == domain.MemberActive
	})).Return(nil)

	svc := NewService(bands, users, nil)
	band, err := svc.CreateBand(context.Background(), 7, CreateBandRequest{
		Name: "Friday Smash", BandType: "flash", Region: "capital",
	})

	require.NoError(t, err)
	assert.True(t, band.IsApproved)
	assert.True(t, band.IsPublic)
	assert.NotNil(t, band.ApprovedAt)
	bands.AssertExpectations(t)
}

func TestCreateBand_GroupWaitsForModeration(t *testing.T) {
	bands := new(mockBandRepo)
	users := new(mockBandUserRepo)

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
	bands.On("Create", mock.Anything, mock.AnythingOfType("*domain.Band")).Return(nil)
	bands.On("AddMember", mock.Anything, mock.AnythingOfType("*domain.BandMember")).Return(nil)

	svc := NewService(bands, users, nil)
	band, err := svc.CreateBand(context.Background(), 7, CreateBandRequest{
		Name: "Seoul Shuttlers", BandType: "group", Region: "capital",
	})

	require.NoError(t, err)
	assert.False(t, band.IsApproved)
	assert.False(t, band.IsPublic)
	assert.Nil(t, band.ApprovedAt)
}

func TestCreateBand_BlockedCreator(t *testing.T) {
	bands := new(mockBandRepo)
	users := new(mockBandUserRepo)

	until := time.Now().Add(72 * time.Hour)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, BandCreationBlockedUntil: &until}, nil)

	svc := NewService(bands, users, nil)
	_, err := svc.CreateBand(context.Background(), 7, CreateBandRequest{
		Name: "Nope", BandType: "flash", Region: "all",
	})

	assert.ErrorIs(t, err, ErrCreationBlocked)
	bands.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestJoin_ApprovalRequiredYieldsPending(t *testing.T) {
	bands := new(mockBandRepo)

	band := &domain.Band{ID: 3, IsPublic: true, IsApproved: true, JoinApprovalRequired: true}
	bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)
	bands.On("GetMember", mock.Anything, int64(3), int64(9)).Return(nil, gorm.ErrRecordNotFound)
	bands.On("AddMember", mock.Anything, mock.MatchedBy(func(m *domain.BandMember) bool {
		return m.Status == domain.MemberPending && m.Role == domain.RoleMember
	})).Return(nil)

	svc := NewService(bands, new(mockBandUserRepo), nil)
	member, err := svc.Join(context.Background(), 3, 9)

	require.NoError(t, err)
	assert.Equal(t, domain.MemberPending, member.Status)
}

func TestJoin_OpenBandIsImmediate(t *testing.T) {
	bands := new(mockBandRepo)

	band := &domain.Band{ID: 3, IsPublic: true, IsApproved: true}
	bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)
	bands.On("GetMember", mock.Anything, int64(3), int64(9)).Return(nil, gorm.ErrRecordNotFound)
	bands.On("AddMember", mock.Anything, mock.MatchedBy(func(m *domain.BandMember) bool {
		return m.Status == domain.MemberActive
	})).Return(nil)

	svc := NewService(bands, new(mockBandUserRepo), nil)
	member, err := svc.Join(context.Background(), 3, 9)

	require.NoError(t, err)
	assert.Equal(t, domain.MemberActive, member.Status)
}

func TestJoin_ExistingRowsKeepTheirState(t *testing.T) {
	cases := []struct {
		status domain.MemberStatus
		want   error
	}{
		{domain.MemberActive, ErrAlreadyMember},
		{domain.MemberPending, ErrJoinPending},
		{domain.MemberBanned, ErrBannedFromBand},
	}

	for _, tc := range cases {
		bands := new(mockBandRepo)
		band := &domain.Band{ID: 3, IsPublic: true, IsApproved: true}
		bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)
		bands.On("GetMember", mock.Anything, int64(3), int64(9)).Return(&domain.BandMember{Status: tc.status}, nil)

		svc := NewService(bands, new(mockBandUserRepo), nil)
		_, err := svc.Join(context.Background(), 3, 9)
		assert.ErrorIs(t, err, tc.want)
	}
}

func TestLeave_OwnerIsBlocked(t *testing.T) {
	bands := new(mockBandRepo)
	bands.On("GetMember", mock.Anything, int64(3), int64(7)).
		Return(&domain.BandMember{Role: domain.RoleOwner, Status: domain.MemberActive}, nil)

	svc := NewService(bands, new(mockBandUserRepo), nil)
	err := svc.Leave(context.Background(), 3, 7)

	assert.ErrorIs(t, err, ErrOwnerCannotLeave)
	bands.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveMember_NotifiesTheApplicant(t *testing.T) {
	bands := new(mockBandRepo)
	notifier := new(mockNotifier)

	band := &domain.Band{ID: 3, Name: "Seoul Shuttlers", IsPublic: true, IsApproved: true}
	bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)
	bands.On("GetMember", mock.Anything, int64(3), int64(7)).
		Return(&domain.BandMember{Role: domain.RoleOwner, Status: domain.MemberActive}, nil)
	bands.On("GetMember", mock.Anything, int64(3), int64(9)).
		Return(&domain.BandMember{UserID: 9, Status: domain.MemberPending}, nil)
	bands.On("SaveMember", mock.Anything, mock.MatchedBy(func(m *domain.BandMember) bool {
		return m.Status == domain.MemberActive
	})).Return(nil)
	notifier.On("MemberApproved", mock.Anything, int64(9), int64(3), "Seoul Shuttlers").Return()

	svc := NewService(bands, new(mockBandUserRepo), notifier)
	err := svc.ApproveMember(context.Background(), 3, 7, 9)

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestApproveMember_ActiveMemberIsNotPending(t *testing.T) {
	bands := new(mockBandRepo)

	band := &domain.Band{ID: 3, IsPublic: true, IsApproved: true}
	bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)
	bands.On("GetMember", mock.Anything, int64(3), int64(7)).
		Return(&domain.BandMember{Role: domain.RoleOwner, Status: domain.MemberActive}, nil)
	bands.On("GetMember", mock.Anything, int64(3), int64(9)).
		Return(&domain.BandMember{UserID: 9, Status: domain.MemberActive}, nil)

	svc := NewService(bands, new(mockBandUserRepo), nil)
	err := svc.ApproveMember(context.Background(), 3, 7, 9)

	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRequestDeletion_OnlyOnce(t *testing.T) {
	bands := new(mockBandRepo)

	band := &domain.Band{ID: 3, IsPublic: true, IsApproved: true, DeletionRequested: true}
	bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)
	bands.On("GetMember", mock.Anything, int64(3), int64(7)).
		Return(&domain.BandMember{Role: domain.RoleOwner, Status: domain.MemberActive}, nil)

	svc := NewService(bands, new(mockBandUserRepo), nil)
	err := svc.RequestDeletion(context.Background(), 3, 7, "club disbanded")

	assert.ErrorIs(t, err, ErrDeletionAlreadyRequested)
	bands.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetBand_HiddenFromOutsiders(t *testing.T) {
	bands := new(mockBandRepo)

	band := &domain.Band{ID: 3, IsPublic: false, IsApproved: false, CreatedByID: 1}
	bands.On("GetByID", mock.Anything, int64(3)).Return(band, nil)
	bands.On("GetMember", mock.Anything, int64(3), int64(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(bands, new(mockBandUserRepo), nil)
	_, err := svc.GetBand(context.Background(), 3, 9)

	assert.ErrorIs(t, err, ErrBandNotFound)
}
