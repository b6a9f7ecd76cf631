package admin

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

// RegisterRoutes expects a group already guarded by JWT auth plus the
// admin-only middleware.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/bands/pending", h.ListPendingBands)
	admin.PUT("/bands/:id/approve", h.ApproveBand)
	admin.PUT("/bands/:id/reject", h.RejectBand)
	admin.GET("/bands/deletion-requests", h.ListDeletionRequests)
	admin.PUT("/bands/:id/deletion-approve", h.ApproveDeletion)

	admin.GET("/users", h.ListUsers)
	admin.PUT("/users/:id/block", h.BlockUser)
	admin.PUT("/users/:id/unblock", h.UnblockUser)

	admin.GET("/stats", h.Statistics)
	admin.GET("/reports", h.ListOpenReports)
	admin.PUT("/reports/:id/resolve", h.ResolveReport)
	admin.GET("/inquiries", h.ListInquiries)
	admin.PUT("/inquiries/:id/answer", h.AnswerInquiry)
}

func (h *Handler) ListPendingBands(c *gin.Context) {
	page, perPage := pagination(c)

	bands, total, err := h.service.ListPendingBands(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list pending bands")
		return
	}

	response.Paginated(c, http.StatusOK, bands, total, page, perPage)
}

func (h *Handler) ApproveBand(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	band, err := h.service.ApproveBand(c.Request.Context(), bandID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"band": band})
}

func (h *Handler) RejectBand(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RejectBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "reason is required")
		return
	}

	band, err := h.service.RejectBand(c.Request.Context(), bandID, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"band": band})
}

func (h *Handler) ListDeletionRequests(c *gin.Context) {
	page, perPage := pagination(c)

	bands, total, err := h.service.ListDeletionRequests(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list deletion requests")
		return
	}

	response.Paginated(c, http.StatusOK, bands, total, page, perPage)
}

func (h *Handler) ApproveDeletion(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.ApproveDeletion(c.Request.Context(), bandID, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Band deleted"})
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, perPage := pagination(c)

	var f UserListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter")
		return
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), f, perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list users")
		return
	}

	response.Paginated(c, http.StatusOK, users, total, page, perPage)
}

func (h *Handler) BlockUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.BlockUser(c.Request.Context(), userID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User blocked"})
}

func (h *Handler) UnblockUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.UnblockUser(c.Request.Context(), userID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User unblocked"})
}

func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STATS_FAILED", "Could not collect statistics")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) ListOpenReports(c *gin.Context) {
	page, perPage := pagination(c)

	reports, total, err := h.service.ListOpenReports(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list reports")
		return
	}

	response.Paginated(c, http.StatusOK, reports, total, page, perPage)
}

func (h *Handler) ResolveReport(c *gin.Context) {
	reportID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.ResolveReport(c.Request.Context(), reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Report not found or already resolved")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not resolve report")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Report resolved"})
}

func (h *Handler) ListInquiries(c *gin.Context) {
	page, perPage := pagination(c)

	inquiries, total, err := h.service.ListInquiries(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list inquiries")
		return
	}

	response.Paginated(c, http.StatusOK, inquiries, total, page, perPage)
}

func (h *Handler) AnswerInquiry(c *gin.Context) {
	inquiryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AnswerInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "answer is required")
		return
	}

	if err := h.service.AnswerInquiry(c.Request.Context(), inquiryID, req.Answer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Inquiry not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not answer inquiry")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Inquiry answered"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBandNotFound):
		response.Error(c, http.StatusNotFound, "BAND_NOT_FOUND", "Band not found")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrNotPendingBand):
		response.Error(c, http.StatusBadRequest, "NOT_PENDING", "Band is not awaiting approval")
	case errors.Is(err, ErrNoDeletionTicket):
		response.Error(c, http.StatusBadRequest, "NO_DELETION_REQUEST", "Band has no pending deletion request")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "reason is required")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
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

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID in path")
		return 0, false
	}
	return id, true
}
