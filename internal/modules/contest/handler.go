package contest

import (
	"errors"
	"net/http"
	"strconv"

	"badmintok/internal/pkg/response"
	"badmintok/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/contests", h.List)
	public.GET("/contests/categories", h.ListCategories)
	public.GET("/contests/:slug", h.GetBySlug)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/me/contests", h.ListLiked)
	protected.POST("/contests/:slug/like", h.ToggleLike)
}

// RegisterAdminRoutes covers directory curation.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/contests", h.Create)
	admin.PUT("/contests/:id", h.Update)
	admin.DELETE("/contests/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	page, perPage := pagination(c)

	f := repository.ContestFilter{
		Region:     c.Query("region"),
		Search:     c.Query("search"),
		UpcomingOn: c.Query("upcoming") == "true",
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CategoryID = &id
		}
	}

	contests, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list contests")
		return
	}

	response.Paginated(c, http.StatusOK, contests, total, page, perPage)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list categories")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) GetBySlug(c *gin.Context) {
	contest, liked, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contest": contest, "liked": liked})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid contest payload")
		return
	}

	contest, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"contest": contest})
}

func (h *Handler) Update(c *gin.Context) {
	contestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || contestID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid contest ID")
		return
	}

	var req UpdateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid contest payload")
		return
	}

	contest, err := h.service.Update(c.Request.Context(), contestID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"contest": contest})
}

func (h *Handler) Delete(c *gin.Context) {
	contestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || contestID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid contest ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), contestID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Contest deleted"})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	contest, _, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"), 0)
	if err != nil {
		h.writeError(c, err)
		return
	}

	liked, err := h.service.ToggleLike(c.Request.Context(), contest.ID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"liked": liked})
}

func (h *Handler) ListLiked(c *gin.Context) {
	page, perPage := pagination(c)

	contests, total, err := h.service.ListLiked(c.Request.Context(), c.GetInt64("user_id"), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list liked contests")
		return
	}

	response.Paginated(c, http.StatusOK, contests, total, page, perPage)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrContestNotFound):
		response.Error(c, http.StatusNotFound, "CONTEST_NOT_FOUND", "Contest not found")
	case errors.Is(err, ErrSlugTaken):
		response.Error(c, http.StatusConflict, "SLUG_TAKEN", "Slug already in use")
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
