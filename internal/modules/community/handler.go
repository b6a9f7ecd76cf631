package community

import (
	"errors"
	"net/http"
	"strconv"

	"badmintok/internal/domain"
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

// RegisterPublicRoutes exposes read access. The group should carry
// OptionalJWTAuth: draft visibility and view dedup depend on who is asking,
// anonymous views are deduped by client IP.
func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/categories", h.ListCategories)
	public.GET("/posts", h.ListPosts)
	public.GET("/posts/hot", h.HotPosts)
	public.GET("/posts/:id", h.GetPost)
	public.GET("/posts/:id/comments", h.ListComments)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/posts", h.CreatePost)
	protected.PUT("/posts/:id", h.UpdatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
	protected.POST("/posts/:id/comments", h.AddComment)
	protected.DELETE("/comments/:id", h.DeleteComment)
	protected.POST("/posts/:id/like", h.ToggleLike)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context(), domain.PostSource(c.Query("source")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list categories")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreatePost(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid post payload")
		return
	}

	source := domain.PostSource(c.DefaultQuery("source", string(domain.SourceCommunity)))
	post, err := h.service.CreatePost(c.Request.Context(), userID, source, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Could not create post")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"post": post})
}

func (h *Handler) ListPosts(c *gin.Context) {
	page, perPage := pagination(c)

	f := repository.PostFilter{
		Source: domain.PostSource(c.Query("source")),
		Search: c.Query("search"),
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CategoryID = &id
		}
	}
	if v := c.Query("author_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.AuthorID = id
		}
	}

	posts, total, err := h.service.ListPosts(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list posts")
		return
	}

	response.Paginated(c, http.StatusOK, posts, total, page, perPage)
}

func (h *Handler) HotPosts(c *gin.Context) {
	posts, err := h.service.HotPosts(c.Request.Context(), domain.PostSource(c.Query("source")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list hot posts")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"posts": posts})
}

func (h *Handler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	viewerKey := c.ClientIP()
	if userID := c.GetInt64("user_id"); userID != 0 {
		viewerKey = "u" + strconv.FormatInt(userID, 10)
	}

	post, err := h.service.GetPost(c.Request.Context(), postID, c.GetInt64("user_id"), c.GetBool("is_admin"), viewerKey)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post": post})
}

func (h *Handler) UpdatePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid post payload")
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), postID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post": post})
}

func (h *Handler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.service.DeletePost(c.Request.Context(), postID, c.GetInt64("user_id"), c.GetBool("is_admin"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *Handler) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "content is required")
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), postID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"comment": comment})
}

func (h *Handler) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list comments")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"comments": comments})
}

func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.service.DeleteComment(c.Request.Context(), commentID, c.GetInt64("user_id"), c.GetBool("is_admin"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	liked, err := h.service.ToggleLike(c.Request.Context(), postID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"liked": liked})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
	case errors.Is(err, ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, "COMMENT_NOT_FOUND", "Comment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the author can do that")
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
