package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gente-backend/notification-service/services"
	"gente-backend/shared/database/models/notification"
)

// WebSocketHandler exposes the live notification channel.
type WebSocketHandler struct {
	wsManager *services.WebSocketManager
}

func NewWebSocketHandler(wsManager *services.WebSocketManager) *WebSocketHandler {
	return &WebSocketHandler{wsManager: wsManager}
}

// HandleWebSocket handles WebSocket connection requests
// @Summary WebSocket Connection
// @Description Establish WebSocket connection for real-time notifications
// @Tags websocket
// @Param user_id path string true "User ID"
// @Router /ws/notifications/{user_id} [get]
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	h.wsManager.HandleWebSocketConnection(c)
}

// SendMessageRequest represents the request payload for sending WebSocket messages
type SendMessageRequest struct {
	UserID  string                         `json:"user_id" binding:"required"`
	Message *notification.WebSocketMessage `json:"message" binding:"required"`
}

// SendWebSocketMessage sends a message to a single connected user
// @Summary Send WebSocket Message
// @Description Send real-time message to specific user via WebSocket
// @Tags websocket
// @Accept json
// @Produce json
// @Param payload body SendMessageRequest true "Message payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /ws/send [post]
func (h *WebSocketHandler) SendWebSocketMessage(c *gin.Context) {
	var request SendMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := h.wsManager.SendToUser(request.UserID, request.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "WebSocket message sent successfully",
		"user_id": request.UserID,
	})
}
