package message

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	jwtsvc "plushhub/internal/pkg/jwt"
	"plushhub/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

type Handler struct {
	svc *Service
	hub *Hub
	jwt *jwtsvc.Service
}

func NewHandler(svc *Service, hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{svc: svc, hub: hub, jwt: jwt}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		// Auth via ?token= because browsers can't set headers on WebSocket.
		public.GET("/ws/messages", h.HandleWebSocket)
	}
	if protected != nil {
		protected.POST("/messages", h.Send)
		protected.GET("/messages", h.Inbox)
		protected.GET("/messages/:id", h.Get)
		protected.PATCH("/messages/:id/read", h.MarkRead)
		protected.DELETE("/messages/:id", h.Delete)
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrInvalidRequest:
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid message data")
	case ErrSelfMessage:
		response.Error(c, http.StatusBadRequest, "SELF_MESSAGE", "You cannot send a message to yourself")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Message or recipient not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized for this message")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}

func (h *Handler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	m, err := h.svc.Send(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) Inbox(c *gin.Context) {
	messages, err := h.svc.Inbox(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, messages)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	m, err := h.svc.Get(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Marked as read"})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Message deleted"})
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.ServeWS(conn, claims.UserID)
}
