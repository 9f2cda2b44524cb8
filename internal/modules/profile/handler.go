package profile

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

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/users", h.List)
	public.GET("/users/:id", h.Get)
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, users)
}

func (h *Handler) Get(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	// user_id is zero for anonymous requests; the service then only shows
	// public custom lists.
	p, err := h.svc.Get(c.Request.Context(), userID, c.GetInt64("user_id"))
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, p)
}
