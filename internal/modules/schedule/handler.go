package schedule

import (
	"errors"
	"net/http"
	"strconv"

	"badmintok/internal/domain"
	"badmintok/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/me/applications", h.MyApplications)

	schedules := protected.Group("/bands/:id/schedules")
	{
		schedules.GET("", h.ListSchedules)
		schedules.POST("", h.CreateSchedule)
		schedules.GET("/:scheduleId", h.GetSchedule)
		schedules.PUT("/:scheduleId", h.UpdateSchedule)
		schedules.DELETE("/:scheduleId", h.DeleteSchedule)
		schedules.POST("/:scheduleId/apply", h.Apply)
		schedules.DELETE("/:scheduleId/apply", h.CancelApplication)
		schedules.GET("/:scheduleId/applications", h.ListApplications)
		schedules.PUT("/:scheduleId/applications/:applicationId/approve", h.ApproveApplication)
		schedules.PUT("/:scheduleId/applications/:applicationId/reject", h.RejectApplication)
	}
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid schedule payload")
		return
	}

	sched, err := h.service.CreateSchedule(c.Request.Context(), bandID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"schedule": sched})
}

func (h *Handler) ListSchedules(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, perPage := pagination(c)
	upcomingOnly := c.Query("upcoming") == "true"

	schedules, total, err := h.service.ListSchedules(c.Request.Context(), bandID, c.GetInt64("user_id"),
		upcomingOnly, perPage, (page-1)*perPage)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, schedules, total, page, perPage)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}

	sched, err := h.service.GetSchedule(c.Request.Context(), bandID, scheduleID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedule": sched})
}

func (h *Handler) UpdateSchedule(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid schedule payload")
		return
	}

	sched, err := h.service.UpdateSchedule(c.Request.Context(), bandID, scheduleID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedule": sched})
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}

	if err := h.service.DeleteSchedule(c.Request.Context(), bandID, scheduleID, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Schedule deleted"})
}

func (h *Handler) Apply(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid application payload")
		return
	}

	app, err := h.service.Apply(c.Request.Context(), bandID, scheduleID, c.GetInt64("user_id"), req.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"application": app})
}

func (h *Handler) CancelApplication(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}

	if err := h.service.CancelApplication(c.Request.Context(), bandID, scheduleID, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Application cancelled"})
}

func (h *Handler) ListApplications(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := pathID(c, "scheduleId")
	if !ok {
		return
	}

	apps, err := h.service.ListApplications(c.Request.Context(), bandID, scheduleID, c.GetInt64("user_id"),
		domain.ApplicationStatus(c.Query("status")))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"applications": apps})
}

func (h *Handler) ApproveApplication(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	applicationID, ok := pathID(c, "applicationId")
	if !ok {
		return
	}

	if err := h.service.ApproveApplication(c.Request.Context(), bandID, applicationID, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Application approved"})
}

func (h *Handler) RejectApplication(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	applicationID, ok := pathID(c, "applicationId")
	if !ok {
		return
	}

	var req RejectApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "reason is required")
		return
	}

	if err := h.service.RejectApplication(c.Request.Context(), bandID, applicationID, c.GetInt64("user_id"), req.Reason); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Application rejected"})
}

func (h *Handler) MyApplications(c *gin.Context) {
	page, perPage := pagination(c)

	apps, total, err := h.service.MyApplications(c.Request.Context(), c.GetInt64("user_id"), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list applications")
		return
	}

	response.Paginated(c, http.StatusOK, apps, total, page, perPage)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrScheduleNotFound):
		response.Error(c, http.StatusNotFound, "SCHEDULE_NOT_FOUND", "Schedule not found")
	case errors.Is(err, ErrApplicationNotFound):
		response.Error(c, http.StatusNotFound, "APPLICATION_NOT_FOUND", "Application not found")
	case errors.Is(err, ErrNotMember):
		response.Error(c, http.StatusForbidden, "NOT_MEMBER", "Active membership required")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient band role")
	case errors.Is(err, ErrScheduleClosed):
		response.Error(c, http.StatusBadRequest, "SCHEDULE_CLOSED", "Schedule is closed for applications")
	case errors.Is(err, ErrDeadlinePassed):
		response.Error(c, http.StatusBadRequest, "DEADLINE_PASSED", "The application deadline has passed")
	case errors.Is(err, ErrScheduleFull):
		response.Error(c, http.StatusConflict, "SCHEDULE_FULL", "No slots left")
	case errors.Is(err, ErrAlreadyApplied):
		response.Error(c, http.StatusConflict, "ALREADY_APPLIED", "Application already exists")
	case errors.Is(err, ErrNotPending):
		response.Error(c, http.StatusBadRequest, "NOT_PENDING", "Application is not pending")
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
