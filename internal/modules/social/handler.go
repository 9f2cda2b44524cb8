package social

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plushhub/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/users/:id/followers", h.Followers)
		public.GET("/users/:id/following", h.Following)
	}
	if protected != nil {
		protected.POST("/users/:id/follow", h.Follow)
		protected.DELETE("/users/:id/follow", h.Unfollow)
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrSelfFollow:
		response.Error(c, http.StatusBadRequest, "SELF_FOLLOW", "You cannot follow yourself")
	case ErrAlreadyFollowing:
		response.Error(c, http.StatusConflict, "ALREADY_FOLLOWING", "Already following this user")
	case ErrNotFollowing:
		response.Error(c, http.StatusConflict, "NOT_FOLLOWING", "Not following this user")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func (h *Handler) Follow(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || targetID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.svc.Follow(c.Request.Context(), c.GetInt64("user_id"), targetID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Successfully followed user"})
}

func (h *Handler) Unfollow(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || targetID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.svc.Unfollow(c.Request.Context(), c.GetInt64("user_id"), targetID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

func (h *Handler) Followers(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	refs, err := h.svc.Followers(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, refs)
}

func (h *Handler) Following(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	refs, err := h.svc.Following(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, refs)
}
