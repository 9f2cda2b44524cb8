package photo

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"plushhub/internal/domain"
	"plushhub/internal/pkg/response"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/toys/:id/photos", h.ListForToy)
		public.GET("/toys/:id/photos/users/:userId", h.ListForToyByUser)
	}

	if protected != nil {
		protected.POST("/toys/:id/photos", h.Upload)
		protected.DELETE("/photos/:id", h.Delete)
		protected.POST("/photos/:id/like", h.ToggleLike)
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) ListForToy(c *gin.Context) {
	toyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.list(c, toyID, 0)
}

func (h *Handler) ListForToyByUser(c *gin.Context) {
	toyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	uploaderID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	h.list(c, toyID, uploaderID)
}

func (h *Handler) list(c *gin.Context, toyID, uploaderID int64) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("limit"))

	res, err := h.svc.ListForToy(c.Request.Context(), toyID, uploaderID, page, pageSize)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Toy or user not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Upload(c *gin.Context) {
	toyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Image file is required")
		return
	}
	if file.Size > maxUploadBytes {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Image must be 10MB or less")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Unsupported image format")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	defer src.Close()

	p, err := h.svc.Upload(c.Request.Context(), toyID, c.GetInt64("user_id"), ext, src, c.PostForm("description"))
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid photo data")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Toy not found")
		case ErrWriteFailed:
			response.Error(c, http.StatusInternalServerError, "WRITE_FAILED", "Couldn't save photo")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Delete(c *gin.Context) {
	photoID, ok := pathID(c, "id")
	if !ok {
		return
	}

	role := domain.UserRole(c.GetString("role"))
	if err := h.svc.Delete(c.Request.Context(), photoID, c.GetInt64("user_id"), role); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can't delete photos that don't belong to you")
		case ErrWriteFailed:
			response.Error(c, http.StatusInternalServerError, "WRITE_FAILED", "Couldn't delete photo")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Deleted photo"})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	photoID, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.svc.ToggleLike(c.Request.Context(), photoID, c.GetInt64("user_id"))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Photo not found")
		case ErrWriteFailed:
			response.Error(c, http.StatusInternalServerError, "WRITE_FAILED", "Couldn't toggle like")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}
	response.Success(c, http.StatusOK, res)
}
