package account

import (
	"errors"
	"net/http"
	"strconv"

	"badmintok/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	me := protected.Group("/users/me")
	{
		me.GET("/profile", h.GetProfile)
		me.PUT("/profile", h.UpdateProfile)
		me.PUT("/name", h.SetRealName)
		me.PUT("/password", h.ChangePassword)
		me.DELETE("", h.Deactivate)
		me.GET("/blocks", h.ListBlocks)
		me.POST("/blocks", h.BlockUser)
		me.DELETE("/blocks/:id", h.UnblockUser)
		me.GET("/inquiries", h.ListInquiries)
		me.POST("/inquiries", h.CreateInquiry)
	}
	protected.POST("/reports", h.ReportUser)
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":            user,
		"profile":         profile,
		"needs_real_name": !profile.HasRealName(),
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) SetRealName(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req SetRealNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
		return
	}

	profile, err := h.service.SetRealName(c.Request.Context(), userID, req.Name)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not save name")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoPasswordAccount):
			response.Error(c, http.StatusBadRequest, "SOCIAL_ACCOUNT", "Social accounts have no password")
		case errors.Is(err, ErrWrongPassword):
			response.Error(c, http.StatusBadRequest, "WRONG_PASSWORD", "Current password is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not change password")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password changed"})
}

func (h *Handler) Deactivate(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.Deactivate(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "DEACTIVATE_FAILED", "Could not deactivate account")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Account deactivated"})
}

func (h *Handler) ListBlocks(c *gin.Context) {
	userID := c.GetInt64("user_id")

	blocks, err := h.service.ListBlocks(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list blocked users")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"blocks": blocks})
}

func (h *Handler) BlockUser(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required")
		return
	}

	err := h.service.BlockUser(c.Request.Context(), userID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfBlock):
			response.Error(c, http.StatusBadRequest, "SELF_BLOCK", "You cannot block yourself")
		case errors.Is(err, ErrAlreadyBlocked):
			response.Error(c, http.StatusConflict, "ALREADY_BLOCKED", "User is already blocked")
		default:
			response.Error(c, http.StatusInternalServerError, "BLOCK_FAILED", "Could not block user")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "User blocked"})
}

func (h *Handler) UnblockUser(c *gin.Context) {
	userID := c.GetInt64("user_id")

	blockedID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.service.UnblockUser(c.Request.Context(), userID, blockedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User is not blocked")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UNBLOCK_FAILED", "Could not unblock user")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User unblocked"})
}

func (h *Handler) ReportUser(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "target_id and reason are required")
		return
	}

	if err := h.service.ReportUser(c.Request.Context(), userID, req); err != nil {
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Could not submit report")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Report submitted"})
}

func (h *Handler) CreateInquiry(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "title and content are required")
		return
	}

	inquiry, err := h.service.CreateInquiry(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INQUIRY_FAILED", "Could not submit inquiry")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"inquiry": inquiry})
}

func (h *Handler) ListInquiries(c *gin.Context) {
	userID := c.GetInt64("user_id")
	page, perPage := pagination(c)

	inquiries, total, err := h.service.ListMyInquiries(c.Request.Context(), userID, perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list inquiries")
		return
	}

	response.Paginated(c, http.StatusOK, inquiries, total, page, perPage)
}

func pagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
