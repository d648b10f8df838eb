package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gente-backend/auth-service/handlers"
	"gente-backend/shared/clients"
	"gente-backend/shared/config"
	"gente-backend/shared/database"
	"gente-backend/shared/middleware"
	utils "gente-backend/shared/utils/auth"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	if err := database.Seed(db, cfg); err != nil {
		logrus.Fatalf("Failed to seed database: %v", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	notifier := clients.NewNotificationClient(cfg.NotificationServiceURL)
	authHandler := handlers.NewAuthHandler(db, cfg, jwtManager, notifier)

	router := gin.Default()

	// Auth endpoints
	router.POST("/api/auth/login", authHandler.Login)
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/forgot-password", authHandler.ForgotPassword)
	router.POST("/api/auth/reset-password", authHandler.ResetPassword)
	router.GET("/api/auth/verify-token", middleware.RequireAuth(db, jwtManager), authHandler.VerifyToken)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "auth",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := strings.Split(cfg.AuthServiceURL, ":")[2]
	logrus.Infof("Auth Service starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Auth service failed: %v", err)
	}
}
