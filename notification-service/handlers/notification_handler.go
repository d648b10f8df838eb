package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gente-backend/notification-service/services"
	"gente-backend/shared/database/models/notification"
)

// NotificationHandler owns the persisted notification endpoints.
type NotificationHandler struct {
	db        *gorm.DB
	wsManager *services.WebSocketManager
}

func NewNotificationHandler(db *gorm.DB, wsManager *services.WebSocketManager) *NotificationHandler {
	return &NotificationHandler{db: db, wsManager: wsManager}
}

// AdminEventRequest is an administrative event published by another service.
type AdminEventRequest struct {
	Type     string                         `json:"type" binding:"required"`
	Level    notification.NotificationLevel `json:"level"`
	Title    string                         `json:"title" binding:"required"`
	Message  string                         `json:"message" binding:"required"`
	Entity   string                         `json:"entity"`
	EntityID *uint                          `json:"entity_id"`
}

// @Summary Get all notifications
// @Description Get stored notifications, newest first
// @Tags notifications
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Success 200 {array} notification.Notification
// @Failure 500 {object} map[string]interface{}
// @Router /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	query := h.db.Order("created_at DESC")
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []notification.Notification
	if err := query.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// @Summary Get notification by ID
// @Description Get a specific notification by ID
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} notification.Notification
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /notifications/{id} [get]
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notif notification.Notification
	if err := h.db.First(&notif, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, notif)
}

// @Summary Publish admin event
// @Description Persist an administrative event and push it to connected dashboard clients
// @Tags notifications
// @Accept json
// @Produce json
// @Param event body AdminEventRequest true "Event data"
// @Success 201 {object} notification.Notification
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /notifications/events [post]
func (h *NotificationHandler) PublishEvent(c *gin.Context) {
	var req AdminEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Level == "" {
		req.Level = notification.NotificationLevelInfo
	}

	notif := notification.Notification{
		Type:     req.Type,
		Level:    req.Level,
		Title:    req.Title,
		Message:  req.Message,
		Entity:   req.Entity,
		EntityID: req.EntityID,
	}

	if err := h.db.Create(&notif).Error; err != nil {
		logrus.WithError(err).Error("failed to store notification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	h.wsManager.BroadcastToAll(&notification.WebSocketMessage{
		Type:      notif.Type,
		Level:     notif.Level,
		Title:     notif.Title,
		Message:   notif.Message,
		Timestamp: notif.CreatedAt,
		Entity:    notif.Entity,
		EntityID:  notif.EntityID,
	})

	c.JSON(http.StatusCreated, notif)
}

// @Summary Mark notification as read
// @Description Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} notification.Notification
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notif notification.Notification
	if err := h.db.First(&notif, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	now := time.Now()
	notif.IsRead = true
	notif.ReadAt = &now
	if err := h.db.Save(&notif).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, notif)
}

// @Summary Delete notification
// @Description Delete a notification by ID
// @Tags notifications
// @Param id path int true "Notification ID"
// @Success 204
// @Failure 400 {object} map[string]interface{}
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := h.db.Delete(&notification.Notification{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}

	c.Status(http.StatusNoContent)
}
