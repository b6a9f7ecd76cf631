package contest

import (
	"context"
	"testing"

	"badmintok/internal/domain"
	"badmintok/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockContestRepo struct{ mock.Mock }

func (m *mockContestRepo) ListCategories(ctx context.Context) ([]domain.ContestCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ContestCategory), args.Error(1)
}

func (m *mockContestRepo) Create(ctx context.Context, c *domain.Contest) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 1
	}
	return args.Error(0)
}

func (m *mockContestRepo) GetByID(ctx context.Context, id int64) (*domain.Contest, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Contest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContestRepo) GetBySlug(ctx context.Context, slug string) (*domain.Contest, error) {
	args := m.Called(ctx, slug)
	if c := args.Get(0); c != nil {
		return c.(*domain.Contest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockContestRepo) Save(ctx context.Context, c *domain.Contest) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContestRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContestRepo) List(ctx context.Context, f repository.ContestFilter) ([]domain.Contest, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Contest), args.Get(1).(int64), args.Error(2)
}

func (m *mockContestRepo) AddLike(ctx context.Context, l *domain.ContestLike) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockContestRepo) RemoveLike(ctx context.Context, contestID, userID int64) error {
	return m.Called(ctx, contestID, userID).Error(0)
}

func (m *mockContestRepo) LikeExists(ctx context.Context, contestID, userID int64) (bool, error) {
	args := m.Called(ctx, contestID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockContestRepo) ListLiked(ctx context.Context, userID int64, limit, offset int) ([]domain.Contest, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Contest), args.Get(1).(int64), args.Error(2)
}

func TestCreate_ParsesCalendarDates(t *testing.T) {
	repo := new(mockContestRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Contest) bool {
		return c.ScheduleStart.Year() == 2026 && c.ScheduleStart.Month() == 10 &&
			c.RegistrationEnd.Day() == 20
	})).Return(nil)

	svc := NewService(repo)
	contest, err := svc.Create(context.Background(), CreateContestRequest{
		Title:             "Autumn Open",
		Slug:              "autumn-open-2026",
		ScheduleStart:     "2026-10-03",
		RegistrationStart: "2026-09-01",
		RegistrationEnd:   "2026-09-20",
	})

	require.NoError(t, err)
	assert.Equal(t, "autumn-open-2026", contest.Slug)
}

func TestCreate_RejectsBadDate(t *testing.T) {
	svc := NewService(new(mockContestRepo))

	_, err := svc.Create(context.Background(), CreateContestRequest{
		Title:             "Broken",
		Slug:              "broken",
		ScheduleStart:     "03/10/2026",
		RegistrationStart: "2026-09-01",
		RegistrationEnd:   "2026-09-20",
	})
	assert.Error(t, err)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	repo := new(mockContestRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Contest")).Return(gorm.ErrDuplicatedKey)

	svc := NewService(repo)
	_, err := svc.Create(context.Background(), CreateContestRequest{
		Title:             "Autumn Open",
		Slug:              "autumn-open-2026",
		ScheduleStart:     "2026-10-03",
		RegistrationStart: "2026-09-01",
		RegistrationEnd:   "2026-09-20",
	})

	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestGetBySlug_ReportsLikeState(t *testing.T) {
	repo := new(mockContestRepo)
	repo.On("GetBySlug", mock.Anything, "autumn-open-2026").Return(&domain.Contest{ID: 4}, nil)
	repo.On("LikeExists", mock.Anything, int64(4), int64(7)).Return(true, nil)

	svc := NewService(repo)
	contest, liked, err := svc.GetBySlug(context.Background(), "autumn-open-2026", 7)

	require.NoError(t, err)
	assert.Equal(t, int64(4), contest.ID)
	assert.True(t, liked)
}

func TestGetBySlug_AnonymousSkipsLikeLookup(t *testing.T) {
	repo := new(mockContestRepo)
	repo.On("GetBySlug", mock.Anything, "autumn-open-2026").Return(&domain.Contest{ID: 4}, nil)

	svc := NewService(repo)
	_, liked, err := svc.GetBySlug(context.Background(), "autumn-open-2026", 0)

	require.NoError(t, err)
	assert.False(t, liked)
	repo.AssertNotCalled(t, "LikeExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLike_Flips(t *testing.T) {
	repo := new(mockContestRepo)
	repo.On("GetByID", mock.Anything, int64(4)).Return(&domain.Contest{ID: 4}, nil)
	repo.On("LikeExists", mock.Anything, int64(4), int64(7)).Return(false, nil).Once()
	repo.On("AddLike", mock.Anything, mock.AnythingOfType("*domain.ContestLike")).Return(nil)

	svc := NewService(repo)
	liked, err := svc.ToggleLike(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.True(t, liked)

	repo.On("LikeExists", mock.Anything, int64(4), int64(7)).Return(true, nil).Once()
	repo.On("RemoveLike", mock.Anything, int64(4), int64(7)).Return(nil)

	liked, err = svc.ToggleLike(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.False(t, liked)
}
