package auth

import (
	"context"
	"testing"
	"time"

	"badmintok/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil && u.ID == 0 {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTokenStore struct {
	mock.Mock
}

func (m *mockTokenStore) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	if args.Error(0) == nil && t.ID == 0 {
		t.ID = 100
	}
	return args.Error(0)
}

func (m *mockTokenStore) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if t := args.Get(0); t != nil {
		return t.(*domain.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTokenStore) MarkRotated(ctx context.Context, id, replacedByID int64) error {
	args := m.Called(ctx, id, replacedByID)
	return args.Error(0)
}

func (m *mockTokenStore) Revoke(ctx context.Context, id int64, replacedByID *int64) error {
	args := m.Called(ctx, id, replacedByID)
	return args.Error(0)
}

func (m *mockTokenStore) RevokeFamily(ctx context.Context, familyID string) error {
	args := m.Called(ctx, familyID)
	return args.Error(0)
}

func (m *mockTokenStore) RevokeByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type fakeJWT struct{}

func (fakeJWT) GenerateToken(userID int64, isAdmin bool) (string, error) {
	return "access-token", nil
}

func newTestService(users *mockUserRepo, tokens *mockTokenStore) *Service {
	return NewService(users, tokens, fakeJWT{}, "test-pepper", time.Hour)
}

func TestRegister_NewUser(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*domain.RefreshToken")).Return(nil)

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:        "New@Example.com",
		Password:     "password123",
		ActivityName: "smasher",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", result.User.Email)
	assert.Equal(t, "smasher", result.User.ActivityName)
	assert.Empty(t, result.User.PasswordHash)
	assert.Equal(t, "access-token", result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	users.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: 7, Email: "taken@example.com"}, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:        "taken@example.com",
		Password:     "password123",
		ActivityName: "dup",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "player@example.com").Return(&domain.User{
		ID:           3,
		Email:        "player@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*domain.RefreshToken")).Return(nil)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "player@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.User.ID)
	assert.NotEmpty(t, result.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "player@example.com").Return(&domain.User{
		ID:           3,
		Email:        "player@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "player@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_SocialAccountHasNoPassword(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	users.On("GetByEmail", mock.Anything, "kakao@example.com").Return(&domain.User{
		ID:           4,
		Email:        "kakao@example.com",
		PasswordHash: "",
		AuthProvider: domain.ProviderKakao,
		IsActive:     true,
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "kakao@example.com",
		Password: "anything",
	})

	assert.ErrorIs(t, err, ErrPasswordLoginDisabled)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw12345678"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "gone@example.com").Return(&domain.User{
		ID:           5,
		Email:        "gone@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "gone@example.com",
		Password: "pw12345678",
	})

	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestRefreshSession_RotatesToken(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	raw := "raw-refresh-token"
	hash := hashTokenWithPepper(raw, "test-pepper")

	tokens.On("GetByHash", mock.Anything, hash).Return(&domain.RefreshToken{
		ID:        10,
		UserID:    3,
		TokenHash: hash,
		FamilyID:  "fam-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, IsActive: true}, nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*domain.RefreshToken")).Return(nil)
	tokens.On("MarkRotated", mock.Anything, int64(10), int64(100)).Return(nil)

	pair, err := svc.RefreshSession(context.Background(), raw)

	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, raw, pair.RefreshToken)
	tokens.AssertExpectations(t)
}

func TestRefreshSession_ReuseRevokesFamily(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	raw := "leaked-token"
	hash := hashTokenWithPepper(raw, "test-pepper")
	used := time.Now().Add(-time.Minute)

	tokens.On("GetByHash", mock.Anything, hash).Return(&domain.RefreshToken{
		ID:        11,
		UserID:    3,
		TokenHash: hash,
		FamilyID:  "fam-2",
		ExpiresAt: time.Now().Add(time.Hour),
		UsedAt:    &used,
	}, nil)
	tokens.On("RevokeFamily", mock.Anything, "fam-2").Return(nil)

	_, err := svc.RefreshSession(context.Background(), raw)

	assert.ErrorIs(t, err, ErrRefreshTokenReused)
	tokens.AssertCalled(t, "RevokeFamily", mock.Anything, "fam-2")
}

func TestRefreshSession_Expired(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	raw := "old-token"
	hash := hashTokenWithPepper(raw, "test-pepper")

	tokens.On("GetByHash", mock.Anything, hash).Return(&domain.RefreshToken{
		ID:        12,
		UserID:    3,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)

	_, err := svc.RefreshSession(context.Background(), raw)

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenStore)
	svc := newTestService(users, tokens)

	tokens.On("GetByHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Logout(context.Background(), "whatever")

	assert.NoError(t, err)
}
