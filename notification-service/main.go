package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	notificationConfig "gente-backend/notification-service/config"
	"gente-backend/notification-service/handlers"
	"gente-backend/notification-service/services"
	"gente-backend/shared/config"
	"gente-backend/shared/database"
)

func main() {
	cfg := notificationConfig.LoadNotificationConfig(config.Load())

	db, err := database.Connect(cfg.Config)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	emailService := services.NewEmailService(cfg)
	wsManager := services.NewWebSocketManager(cfg.FrontendURL)

	emailHandler := handlers.NewEmailHandler(emailService)
	notificationHandler := handlers.NewNotificationHandler(db, wsManager)
	wsHandler := handlers.NewWebSocketHandler(wsManager)

	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "notification",
			"status":  "healthy",
		})
	})

	// Email routes
	emailRoutes := router.Group("/api/notifications/email")
	{
		emailRoutes.POST("/send", emailHandler.SendEmail)
		emailRoutes.POST("/password-reset", emailHandler.SendPasswordResetEmail)
	}

	// Notification routes
	router.GET("/api/notifications", notificationHandler.GetNotifications)
	router.GET("/api/notifications/:id", notificationHandler.GetNotification)
	router.POST("/api/notifications/events", notificationHandler.PublishEvent)
	router.PUT("/api/notifications/:id/read", notificationHandler.MarkAsRead)
	router.DELETE("/api/notifications/:id", notificationHandler.DeleteNotification)

	// WebSocket endpoints
	router.GET("/ws/notifications/:user_id", wsHandler.HandleWebSocket)
	router.POST("/ws/send", wsHandler.SendWebSocketMessage)

	port := strings.Split(cfg.NotificationServiceURL, ":")[2]
	logrus.Infof("Notification Service starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Notification service failed: %v", err)
	}
}
