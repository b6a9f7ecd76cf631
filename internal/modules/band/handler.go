package band

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
	posts   *PostService
}

func NewHandler(service *Service, posts *PostService) *Handler {
	return &Handler{service: service, posts: posts}
}

// RegisterPublicRoutes exposes the band directory. Invisible bands are
// filtered inside the service, so these endpoints are safe without auth.
func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/bands", h.ListBands)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/bands/my", h.MyBands)
	protected.GET("/bands/bookmarks", h.ListBookmarks)
	protected.POST("/bands", h.CreateBand)

	bands := protected.Group("/bands/:id")
	{
		bands.GET("", h.GetBand)
		bands.PUT("", h.UpdateBand)
		bands.POST("/join", h.Join)
		bands.DELETE("/leave", h.Leave)
		bands.GET("/members", h.ListMembers)
		bands.PUT("/members/:userId/approve", h.ApproveMember)
		bands.DELETE("/members/:userId/reject", h.RejectMember)
		bands.PUT("/members/:userId/ban", h.BanMember)
		bands.POST("/deletion-request", h.RequestDeletion)
		bands.POST("/bookmark", h.AddBookmark)
		bands.DELETE("/bookmark", h.RemoveBookmark)

		bands.GET("/posts", h.ListPosts)
		bands.POST("/posts", h.CreatePost)
		bands.GET("/posts/:postId", h.GetPost)
		bands.PUT("/posts/:postId", h.UpdatePost)
		bands.DELETE("/posts/:postId", h.DeletePost)
		bands.GET("/posts/:postId/comments", h.ListComments)
		bands.POST("/posts/:postId/comments", h.AddComment)
		bands.DELETE("/comments/:commentId", h.DeleteComment)
		bands.POST("/posts/:postId/like", h.ToggleLike)
		bands.POST("/votes", h.CreateVote)
		bands.GET("/posts/:postId/vote", h.GetVote)
		bands.POST("/posts/:postId/vote", h.CastVote)
		bands.DELETE("/posts/:postId/vote/:optionId", h.RetractVote)
	}
}

func (h *Handler) CreateBand(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid band payload")
		return
	}

	band, err := h.service.CreateBand(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrCreationBlocked) {
			response.Error(c, http.StatusForbidden, "CREATION_BLOCKED", "Band creation is temporarily blocked for this account")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Could not create band")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"band": band})
}

func (h *Handler) ListBands(c *gin.Context) {
	page, perPage := pagination(c)

	f := repository.BandFilter{
		BandType: domain.BandType(c.Query("band_type")),
		Region:   domain.Region(c.Query("region")),
		Search:   c.Query("search"),
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}

	bands, total, err := h.service.ListBands(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list bands")
		return
	}

	response.Paginated(c, http.StatusOK, bands, total, page, perPage)
}

func (h *Handler) GetBand(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.GetBand(c.Request.Context(), bandID, c.GetInt64("user_id"))
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) UpdateBand(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid band payload")
		return
	}

	band, err := h.service.UpdateBand(c.Request.Context(), bandID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"band": band})
}

func (h *Handler) Join(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	member, err := h.service.Join(c.Request.Context(), bandID, c.GetInt64("user_id"))
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"member": member})
}

func (h *Handler) Leave(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Leave(c.Request.Context(), bandID, c.GetInt64("user_id")); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Left the band"})
}

func (h *Handler) ListMembers(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), bandID, c.GetInt64("user_id"), domain.MemberStatus(c.Query("status")))
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"members": members})
}

func (h *Handler) ApproveMember(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.ApproveMember(c.Request.Context(), bandID, c.GetInt64("user_id"), memberID); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Member approved"})
}

func (h *Handler) RejectMember(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.RejectMember(c.Request.Context(), bandID, c.GetInt64("user_id"), memberID); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Join request rejected"})
}

func (h *Handler) BanMember(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.BanMember(c.Request.Context(), bandID, c.GetInt64("user_id"), memberID); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Member banned"})
}

func (h *Handler) MyBands(c *gin.Context) {
	bands, err := h.service.MyBands(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list bands")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bands": bands})
}

func (h *Handler) RequestDeletion(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RequestDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "reason is required")
		return
	}

	if err := h.service.RequestDeletion(c.Request.Context(), bandID, c.GetInt64("user_id"), req.Reason); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"message": "Deletion requested, pending admin review"})
}

func (h *Handler) AddBookmark(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.AddBookmark(c.Request.Context(), bandID, c.GetInt64("user_id")); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Band bookmarked"})
}

func (h *Handler) RemoveBookmark(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveBookmark(c.Request.Context(), bandID, c.GetInt64("user_id")); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Bookmark removed"})
}

func (h *Handler) ListBookmarks(c *gin.Context) {
	page, perPage := pagination(c)

	bookmarks, total, err := h.service.ListBookmarks(c.Request.Context(), c.GetInt64("user_id"), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Could not list bookmarks")
		return
	}

	response.Paginated(c, http.StatusOK, bookmarks, total, page, perPage)
}

// Board handlers.

func (h *Handler) CreatePost(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid post payload")
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), bandID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"post": post})
}

func (h *Handler) ListPosts(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, perPage := pagination(c)

	posts, total, err := h.posts.ListPosts(c.Request.Context(), bandID, c.GetInt64("user_id"),
		domain.BandPostType(c.Query("post_type")), perPage, (page-1)*perPage)
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, posts, total, page, perPage)
}

func (h *Handler) GetPost(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), bandID, postID, c.GetInt64("user_id"))
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post": post})
}

func (h *Handler) UpdatePost(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid post payload")
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), bandID, postID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post": post})
}

func (h *Handler) DeletePost(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), bandID, postID, c.GetInt64("user_id")); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *Handler) AddComment(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "content is required")
		return
	}

	comment, err := h.posts.AddComment(c.Request.Context(), bandID, postID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"comment": comment})
}

func (h *Handler) ListComments(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	comments, err := h.posts.ListComments(c.Request.Context(), bandID, postID, c.GetInt64("user_id"))
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"comments": comments})
}

func (h *Handler) DeleteComment(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.posts.DeleteComment(c.Request.Context(), bandID, commentID, c.GetInt64("user_id")); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	liked, err := h.posts.ToggleLike(c.Request.Context(), bandID, postID, c.GetInt64("user_id"))
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"liked": liked})
}

func (h *Handler) CreateVote(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A vote needs a title and at least two options")
		return
	}

	vote, err := h.posts.CreateVote(c.Request.Context(), bandID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"vote": vote})
}

func (h *Handler) GetVote(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	vote, mine, err := h.posts.GetVote(c.Request.Context(), bandID, postID, c.GetInt64("user_id"))
	if err != nil {
		h.writeBandError(c, err)
		return
	}

	myOptions := make([]int64, 0, len(mine))
	for _, choice := range mine {
		myOptions = append(myOptions, choice.OptionID)
	}

	response.Success(c, http.StatusOK, gin.H{"vote": vote, "my_choices": myOptions})
}

func (h *Handler) CastVote(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "option_id is required")
		return
	}

	if err := h.posts.CastVote(c.Request.Context(), bandID, postID, c.GetInt64("user_id"), req.OptionID); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Vote recorded"})
}

func (h *Handler) RetractVote(c *gin.Context) {
	bandID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	optionID, ok := pathID(c, "optionId")
	if !ok {
		return
	}

	if err := h.posts.RetractVote(c.Request.Context(), bandID, postID, c.GetInt64("user_id"), optionID); err != nil {
		h.writeBandError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Vote retracted"})
}

func (h *Handler) writeBandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBandNotFound):
		response.Error(c, http.StatusNotFound, "BAND_NOT_FOUND", "Band not found")
	case errors.Is(err, ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
	case errors.Is(err, ErrVoteNotFound):
		response.Error(c, http.StatusNotFound, "VOTE_NOT_FOUND", "Vote not found")
	case errors.Is(err, ErrMemberNotFound):
		response.Error(c, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member not found")
	case errors.Is(err, ErrBookmarkNotFound):
		response.Error(c, http.StatusNotFound, "BOOKMARK_NOT_FOUND", "Bookmark not found")
	case errors.Is(err, ErrNotMember):
		response.Error(c, http.StatusForbidden, "NOT_MEMBER", "Active membership required")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient band role")
	case errors.Is(err, ErrOwnerCannotLeave):
		response.Error(c, http.StatusBadRequest, "OWNER_CANNOT_LEAVE", "Transfer ownership before leaving")
	case errors.Is(err, ErrAlreadyMember):
		response.Error(c, http.StatusConflict, "ALREADY_MEMBER", "Already a member of this band")
	case errors.Is(err, ErrJoinPending):
		response.Error(c, http.StatusConflict, "JOIN_PENDING", "Join request already pending")
	case errors.Is(err, ErrBannedFromBand):
		response.Error(c, http.StatusForbidden, "BANNED", "You were banned from this band")
	case errors.Is(err, ErrDeletionAlreadyRequested):
		response.Error(c, http.StatusConflict, "DELETION_REQUESTED", "Deletion already requested")
	case errors.Is(err, ErrBookmarkExists):
		response.Error(c, http.StatusConflict, "ALREADY_BOOKMARKED", "Band already bookmarked")
	case errors.Is(err, ErrVoteClosed):
		response.Error(c, http.StatusBadRequest, "VOTE_CLOSED", "Vote is closed")
	case errors.Is(err, ErrAlreadyVoted):
		response.Error(c, http.StatusConflict, "ALREADY_VOTED", "Already voted for this option")
	case errors.Is(err, ErrSingleChoice):
		response.Error(c, http.StatusBadRequest, "SINGLE_CHOICE", "This vote allows only one choice")
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
