package social

import (
	"errors"
	"net/http"

	"badmintok/internal/pkg/response"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stateSessionKey = "oauth_state"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.GET("/:provider/login", h.RedirectToProvider)
		authGroup.GET("/:provider/callback", h.Callback)
		authGroup.POST("/:provider", h.LoginWithToken)
	}
}

// RedirectToProvider starts the web flow: random state goes into the cookie
// session, the user goes to the provider's consent screen.
func (h *Handler) RedirectToProvider(c *gin.Context) {
	state := uuid.NewString()

	url, err := h.service.AuthCodeURL(c.Param("provider"), state)
	if err != nil {
		response.Error(c, http.StatusNotFound, "UNKNOWN_PROVIDER", "Unsupported social provider")
		return
	}

	session := sessions.Default(c)
	session.Set(stateSessionKey, state)
	if err := session.Save(); err != nil {
		response.Error(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to persist login state")
		return
	}

	c.Redirect(http.StatusFound, url)
}

// Callback completes the web flow. The state check fails closed: no stored
// state or a mismatch both reject the login.
func (h *Handler) Callback(c *gin.Context) {
	session := sessions.Default(c)
	stored, _ := session.Get(stateSessionKey).(string)
	session.Delete(stateSessionKey)
	_ = session.Save()

	if stored == "" || stored != c.Query("state") {
		response.Error(c, http.StatusBadRequest, "INVALID_STATE", "OAuth state mismatch")
		return
	}

	code := c.Query("code")
	if code == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_CODE", "Authorization code is required")
		return
	}

	result, err := h.service.HandleCallback(c.Request.Context(), c.Param("provider"), code)
	if err != nil {
		h.writeLoginError(c, err)
		return
	}

	h.writeLoginSuccess(c, result)
}

type tokenLoginRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// LoginWithToken serves mobile clients holding a provider token from a
// native SDK.
func (h *Handler) LoginWithToken(c *gin.Context) {
	var req tokenLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "access_token is required")
		return
	}

	result, err := h.service.LoginWithToken(c.Request.Context(), c.Param("provider"), req.AccessToken)
	if err != nil {
		h.writeLoginError(c, err)
		return
	}

	h.writeLoginSuccess(c, result)
}

func (h *Handler) writeLoginSuccess(c *gin.Context, result *Result) {
	response.Success(c, http.StatusOK, gin.H{
		"user":            result.User,
		"access_token":    result.AccessToken,
		"refresh_token":   result.RefreshToken,
		"needs_real_name": result.NeedsRealName,
	})
}

func (h *Handler) writeLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownProvider):
		response.Error(c, http.StatusNotFound, "UNKNOWN_PROVIDER", "Unsupported social provider")
	case errors.Is(err, ErrEmailRequired):
		response.Error(c, http.StatusBadRequest, "EMAIL_REQUIRED", "The provider account has no email; grant the email permission and retry")
	case errors.Is(err, ErrExchangeFailed):
		response.Error(c, http.StatusBadGateway, "EXCHANGE_FAILED", "Could not exchange the authorization code")
	case errors.Is(err, ErrUserInfoFailed):
		response.Error(c, http.StatusBadGateway, "USERINFO_FAILED", "Could not fetch the provider profile")
	default:
		response.Error(c, http.StatusInternalServerError, "SOCIAL_LOGIN_FAILED", "Social login failed")
	}
}
