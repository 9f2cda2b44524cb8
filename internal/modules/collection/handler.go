package collection

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plushhub/internal/domain"
	"plushhub/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/users/:id/collection/:kind", h.Add)
	protected.DELETE("/users/:id/collection/:kind/:toyId", h.Remove)

	protected.GET("/users/:id/lists", h.Lists)
	protected.POST("/users/:id/lists", h.CreateList)
	protected.DELETE("/users/:id/lists/:listId", h.DeleteList)
	protected.POST("/users/:id/lists/:listId/items", h.AddToList)
	protected.DELETE("/users/:id/lists/:listId/items/:toyId", h.RemoveFromList)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrInvalidRequest:
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only modify your own collections")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "List not found")
	case ErrAlreadyMember:
		response.Error(c, http.StatusConflict, "ALREADY_MEMBER", "Toy is already in this container")
	case ErrDuplicateName:
		response.Error(c, http.StatusConflict, "DUPLICATE_NAME", "A list with this name already exists")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func (h *Handler) Add(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	kind := domain.ContainerKind(c.Param("kind"))
	err := h.svc.Add(c.Request.Context(), ownerID, c.GetInt64("user_id"), req.ToyID, kind)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Added to " + string(kind)})
}

func (h *Handler) Remove(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	toyID, ok := pathID(c, "toyId")
	if !ok {
		return
	}

	kind := domain.ContainerKind(c.Param("kind"))
	err := h.svc.Remove(c.Request.Context(), ownerID, c.GetInt64("user_id"), toyID, kind)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Removed from " + string(kind)})
}

func (h *Handler) Lists(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lists, err := h.svc.Lists(c.Request.Context(), ownerID, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, lists)
}

func (h *Handler) CreateList(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	list, err := h.svc.CreateList(c.Request.Context(), ownerID, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, list)
}

func (h *Handler) DeleteList(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	listID, ok := pathID(c, "listId")
	if !ok {
		return
	}

	if err := h.svc.DeleteList(c.Request.Context(), ownerID, c.GetInt64("user_id"), listID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Deleted list"})
}

func (h *Handler) AddToList(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	listID, ok := pathID(c, "listId")
	if !ok {
		return
	}
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	list, err := h.svc.AddToList(c.Request.Context(), ownerID, c.GetInt64("user_id"), listID, req.ToyID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) RemoveFromList(c *gin.Context) {
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	listID, ok := pathID(c, "listId")
	if !ok {
		return
	}
	toyID, ok := pathID(c, "toyId")
	if !ok {
		return
	}

	err := h.svc.RemoveFromList(c.Request.Context(), ownerID, c.GetInt64("user_id"), listID, toyID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Removed from list"})
}
