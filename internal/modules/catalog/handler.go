package catalog

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
		public.GET("/toys", h.List)
		public.GET("/toys/available", h.Available)
		public.GET("/toys/:id", h.Get)
		public.GET("/users/:id/toys", h.ByUser)
	}

	if protected != nil {
		protected.POST("/toys", h.Create)
		protected.PATCH("/toys/:id", h.Update)
		protected.DELETE("/toys/:id", h.Delete)
		protected.POST("/toys/:id/like", h.ToggleLike)
		protected.POST("/toys/:id/reviews", h.UpsertReview)
	}
}

func listQueryFrom(c *gin.Context) ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("limit"))
	return ListQuery{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		SortBy:   c.Query("sort_by"),
		Order:    c.Query("order"),
		Page:     page,
		PageSize: pageSize,
	}
}

func (h *Handler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), listQueryFrom(c))
	if err != nil {
		h.writeListError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Available(c *gin.Context) {
	page, err := h.svc.Available(c.Request.Context(), listQueryFrom(c))
	if err != nil {
		h.writeListError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) writeListError(c *gin.Context, err error) {
	switch err {
	case ErrInvalidSort:
		response.Error(c, http.StatusBadRequest, "INVALID_SORT", "Unknown sort field or order")
	case ErrInvalidCategory:
		response.Error(c, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown category")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid toy ID")
		return
	}

	toy, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Toy not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, toy)
}

func (h *Handler) ByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	toys, err := h.svc.ByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, toys)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateToyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	toy, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrInvalidRequest, ErrInvalidCategory:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrWriteFailed:
			response.Error(c, http.StatusInternalServerError, "WRITE_FAILED", "Couldn't write data to database")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}
	response.Success(c, http.StatusCreated, toy)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid toy ID")
		return
	}

	var req UpdateToyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	toy, err := h.svc.Update(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeMutationError(c, err, "You can't edit toys that don't belong to you")
		return
	}
	response.Success(c, http.StatusOK, toy)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid toy ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeMutationError(c, err, "You can't delete toys that don't belong to you")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Deleted toy"})
}

func (h *Handler) writeMutationError(c *gin.Context, err error, forbiddenMsg string) {
	switch err {
	case ErrInvalidRequest, ErrInvalidCategory:
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Toy not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", forbiddenMsg)
	case ErrWriteFailed:
		response.Error(c, http.StatusInternalServerError, "WRITE_FAILED", "Couldn't write data to database")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func (h *Handler) ToggleLike(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid toy ID")
		return
	}

	res, err := h.svc.ToggleLike(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeMutationError(c, err, "")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) UpsertReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid toy ID")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid review data")
		return
	}

	toy, err := h.svc.UpsertReview(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeMutationError(c, err, "")
		return
	}
	response.Success(c, http.StatusOK, toy)
}
