package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"badmintok/internal/database"
	"badmintok/internal/domain"
	"badmintok/internal/middleware"
	"badmintok/internal/modules/admin"
	"badmintok/internal/modules/auth"
	"badmintok/internal/modules/band"
	"badmintok/internal/modules/community"
	"badmintok/internal/modules/contest"
	"badmintok/internal/modules/notification"
	"badmintok/internal/modules/schedule"
	jwtsvc "badmintok/internal/pkg/jwt"
	"badmintok/internal/repository"
)

type testSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type testResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *errorDetail           `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *testSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	bandRepo := repository.NewBandRepository(db)
	bandPostRepo := repository.NewBandPostRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	contestRepo := repository.NewContestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	supportRepo := repository.NewSupportRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	notificationService := notification.NewService(notificationRepo, userRepo, nil, nil)

	authService := auth.NewService(userRepo, tokenRepo, jwtService, "test-pepper", 168*time.Hour)
	authHandler := auth.NewHandler(authService)

	bandService := band.NewService(bandRepo, userRepo, notificationService)
	bandHandler := band.NewHandler(bandService, band.NewPostService(bandRepo, bandPostRepo))

	scheduleHandler := schedule.NewHandler(schedule.NewService(scheduleRepo, bandRepo, notificationService))
	communityHandler := community.NewHandler(community.NewService(communityRepo, nil))
	contestHandler := contest.NewHandler(contest.NewService(contestRepo))

	adminService := admin.NewService(bandRepo, userRepo, supportRepo, statsRepo, tokenRepo, notificationService)
	adminHandler := admin.NewHandler(adminService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterPublicRoutes(v1)
	bandHandler.RegisterPublicRoutes(v1)
	contestHandler.RegisterPublicRoutes(v1)

	withIdentity := v1.Group("")
	withIdentity.Use(middleware.OptionalJWTAuth(jwtService))
	communityHandler.RegisterPublicRoutes(withIdentity)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		bandHandler.RegisterProtectedRoutes(protected)
		scheduleHandler.RegisterProtectedRoutes(protected)
		communityHandler.RegisterProtectedRoutes(protected)
		contestHandler.RegisterProtectedRoutes(protected)
	}

	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.JWTAuth(jwtService), middleware.AdminOnly())
	{
		adminHandler.RegisterRoutes(adminGroup)
		contestHandler.RegisterAdminRoutes(adminGroup)
	}

	return &testSuite{router: r, db: db, jwtService: jwtService}
}

func (s *testSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *testResponse {
	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"unparseable response. status=%d body=%s", w.Code, w.Body.String())
	return &resp
}

// registerUser creates an account through the API and returns its access token.
func (s *testSuite) registerUser(t *testing.T, email, activityName string) string {
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"email":         email,
		"password":      "Password123!",
		"activity_name": activityName,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "registration failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	return resp.Data["access_token"].(string)
}

// adminToken creates an admin account directly in the database and mints a
// token for it.
func (s *testSuite) adminToken(t *testing.T) string {
	adminUser := &domain.User{
		Email:        "admin@test.local",
		PasswordHash: "$2a$10$dummy",
		ActivityName: "admin",
		IsActive:     true,
		IsAdmin:      true,
	}
	require.NoError(t, s.db.Create(adminUser).Error)

	token, err := s.jwtService.GenerateToken(adminUser.ID, true)
	require.NoError(t, err)
	return token
}

func extractID(t *testing.T, resp *testResponse, key string) int64 {
	obj, ok := resp.Data[key].(map[string]interface{})
	require.True(t, ok, "no %q object in response data", key)
	id, ok := obj["id"].(float64)
	require.True(t, ok, "%q object has no id", key)
	return int64(id)
}

func TestAuthFlow(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.registerUser(t, "player@test.local", "셔틀이")

	t.Run("login returns a token pair", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "player@test.local",
			"password": "Password123!",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["access_token"])
		assert.NotEmpty(t, resp.Data["refresh_token"])
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"email":         "player@test.local",
			"password":      "Password123!",
			"activity_name": "중복이",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("GET /users/me", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/users/me", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "player@test.local", user["email"])
	})

	t.Run("refresh rotates the token pair", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "player@test.local",
			"password": "Password123!",
		}, "")
		refresh := parseResponse(t, w).Data["refresh_token"].(string)

		w = suite.makeRequest("POST", "/api/v1/auth/refresh", map[string]interface{}{
			"refresh_token": refresh,
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, parseResponse(t, w).Data["access_token"])

		// Reusing a rotated token must fail.
		w = suite.makeRequest("POST", "/api/v1/auth/refresh", map[string]interface{}{
			"refresh_token": refresh,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBandModerationFlow(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.registerUser(t, "owner@test.local", "클럽장")
	memberToken := suite.registerUser(t, "member@test.local", "신입")
	adminToken := suite.adminToken(t)

	var bandID int64

	t.Run("a club needs moderation before going public", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bands", map[string]interface{}{
			"name":                   "새벽 배드민턴 클럽",
			"description":            "매주 화/목 새벽 운동",
			"band_type":              "club",
			"region":                 "capital",
			"join_approval_required": true,
		}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		bandID = extractID(t, resp, "band")

		// Not approved yet, so the public listing stays empty.
		w = suite.makeRequest("GET", "/api/v1/bands", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		listData := parseResponse(t, w).Data
		assert.EqualValues(t, 0, listData["total"])
	})

	t.Run("admin approval publishes the band", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/admin/bands/pending", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("PUT", fmt.Sprintf("/api/v1/admin/bands/%d/approve", bandID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("GET", "/api/v1/bands", nil, "")
		listData := parseResponse(t, w).Data
		assert.EqualValues(t, 1, listData["total"])
	})

	t.Run("joining goes through owner approval", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/join", bandID), nil, memberToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// Pending members cannot see band internals yet.
		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/bands/%d/posts", bandID), nil, memberToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		var member domain.User
		require.NoError(t, suite.db.Where("email = ?", "member@test.local").First(&member).Error)

		w = suite.makeRequest("PUT", fmt.Sprintf("/api/v1/bands/%d/members/%d/approve", bandID, member.ID), nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("GET", "/api/v1/bands/my", nil, memberToken)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("band feed: post, comment, like", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/posts", bandID), map[string]interface{}{
			"title":   "첫 모임 공지",
			"content": "토요일 2시 잠실 체육관",
		}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		postID := extractID(t, parseResponse(t, w), "post")

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/posts/%d/comments", bandID, postID), map[string]interface{}{
			"content": "참석합니다!",
		}, memberToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/posts/%d/like", bandID, postID), nil, memberToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, parseResponse(t, w).Data["liked"])
	})

	t.Run("deletion needs an admin and blocks the creator", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/deletion-request", bandID), map[string]interface{}{
			"reason": "활동 종료",
		}, ownerToken)
		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

		w = suite.makeRequest("PUT", fmt.Sprintf("/api/v1/admin/bands/%d/deletion-approve", bandID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// The band is gone from the public listing.
		w = suite.makeRequest("GET", "/api/v1/bands", nil, "")
		listData := parseResponse(t, w).Data
		assert.EqualValues(t, 0, listData["total"])

		// The creator sits out the cool-down before founding another band.
		w = suite.makeRequest("POST", "/api/v1/bands", map[string]interface{}{
			"name":      "바로 새 클럽",
			"band_type": "club",
			"region":    "capital",
		}, ownerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "CREATION_BLOCKED", parseResponse(t, w).Error.Code)
	})
}

func TestScheduleFlow(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.registerUser(t, "owner@test.local", "클럽장")
	memberToken := suite.registerUser(t, "member@test.local", "참가자")

	// Flash bands go live immediately, which keeps this flow admin-free.
	w := suite.makeRequest("POST", "/api/v1/bands", map[string]interface{}{
		"name":      "토요일 번개",
		"band_type": "flash",
		"region":    "capital",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bandID := extractID(t, parseResponse(t, w), "band")

	w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/join", bandID), nil, memberToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var scheduleID int64

	t.Run("manager creates a first-come-first-served schedule", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/schedules", bandID), map[string]interface{}{
			"title":             "토요일 복식 게임",
			"location":          "잠실 체육관",
			"start_datetime":    time.Now().Add(72 * time.Hour).Format(time.RFC3339),
			"max_participants":  2,
			"requires_approval": false,
		}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		scheduleID = extractID(t, parseResponse(t, w), "schedule")
	})

	t.Run("applying without approval claims a slot immediately", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/schedules/%d/apply", bandID, scheduleID), nil, memberToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		app := parseResponse(t, w).Data["application"].(map[string]interface{})
		assert.Equal(t, "approved", app["status"])

		w = suite.makeRequest("GET", "/api/v1/users/me/applications", nil, memberToken)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("a full schedule turns away the next applicant", func(t *testing.T) {
		// The owner takes the last slot.
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/schedules/%d/apply", bandID, scheduleID), nil, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		lateToken := suite.registerUser(t, "late@test.local", "지각생")
		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/join", bandID), nil, lateToken)
		require.Equal(t, http.StatusCreated, w.Code)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bands/%d/schedules/%d/apply", bandID, scheduleID), nil, lateToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "SCHEDULE_FULL", parseResponse(t, w).Error.Code)
	})

	t.Run("cancelling frees the slot", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/bands/%d/schedules/%d/apply", bandID, scheduleID), nil, memberToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var sched domain.BandSchedule
		require.NoError(t, suite.db.First(&sched, scheduleID).Error)
		assert.Equal(t, 1, sched.CurrentParticipants)
	})
}

func TestCommunityFlow(t *testing.T) {
	suite := setupTestSuite(t)

	authorToken := suite.registerUser(t, "author@test.local", "글쓴이")
	readerToken := suite.registerUser(t, "reader@test.local", "독자")

	var postID int64

	t.Run("publish a post", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/posts", map[string]interface{}{
			"title":   "초보 라켓 추천 부탁드립니다",
			"content": "입문 3개월차입니다.",
		}, authorToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		postID = extractID(t, parseResponse(t, w), "post")
	})

	t.Run("anonymous readers see it and bump the view count", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/posts/%d", postID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		post := parseResponse(t, w).Data["post"].(map[string]interface{})
		assert.EqualValues(t, 1, post["view_count"])
	})

	t.Run("comment and like", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/posts/%d/comments", postID), map[string]interface{}{
			"content": "요넥스 낮은 텐션부터 시작하세요.",
		}, readerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/posts/%d/like", postID), nil, readerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, parseResponse(t, w).Data["liked"])
	})

	t.Run("drafts stay private to their author", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/posts", map[string]interface{}{
			"title":    "아직 쓰는 중",
			"content":  "내일 마저 쓸 글",
			"is_draft": true,
		}, authorToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		draftID := extractID(t, parseResponse(t, w), "post")

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/posts/%d", draftID), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/posts/%d", draftID), nil, readerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/posts/%d", draftID), nil, authorToken)
		require.Equal(t, http.StatusOK, w.Code)
		post := parseResponse(t, w).Data["post"].(map[string]interface{})
		assert.Equal(t, true, post["is_draft"])
		assert.EqualValues(t, 0, post["view_count"])
	})

	t.Run("only the author can edit", func(t *testing.T) {
		w := suite.makeRequest("PUT", fmt.Sprintf("/api/v1/posts/%d", postID), map[string]interface{}{
			"title": "제목 수정",
		}, readerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestContestFlow(t *testing.T) {
	suite := setupTestSuite(t)

	adminToken := suite.adminToken(t)
	playerToken := suite.registerUser(t, "player@test.local", "선수")

	t.Run("admin curates the directory", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/admin/contests", map[string]interface{}{
			"title":              "전국 동호인 대회",
			"slug":               "national-open",
			"schedule_start":     "2026-10-03",
			"registration_start": "2026-09-01",
			"registration_end":   "2026-09-20",
			"location":           "수원실내체육관",
		}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("players browse and like", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/contests/national-open", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", "/api/v1/contests/national-open/like", nil, playerToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, parseResponse(t, w).Data["liked"])

		w = suite.makeRequest("GET", "/api/v1/users/me/contests", nil, playerToken)
		require.Equal(t, http.StatusOK, w.Code)
		listData := parseResponse(t, w).Data
		assert.EqualValues(t, 1, listData["total"])
	})

	t.Run("regular users cannot curate", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/admin/contests", map[string]interface{}{
			"title":              "몰래 넣기",
			"slug":               "sneaky",
			"schedule_start":     "2026-10-03",
			"registration_start": "2026-09-01",
			"registration_end":   "2026-09-20",
		}, playerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
