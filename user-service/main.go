package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gente-backend/shared/clients"
	"gente-backend/shared/config"
	"gente-backend/shared/database"
	"gente-backend/shared/database/models"
	"gente-backend/shared/middleware"
	utils "gente-backend/shared/utils/auth"
	"gente-backend/user-service/handlers"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	publisher := clients.NewNotificationClient(cfg.NotificationServiceURL)
	userHandler := handlers.NewUserHandler(db, publisher)

	router := gin.Default()

	authRequired := middleware.RequireAuth(db, jwtManager)
	adminOnly := middleware.RequireRole(models.RoleSuperAdmin, models.RoleAdmin)

	// User administration routes
	users := router.Group("/api/users", authRequired, adminOnly)
	{
		users.GET("", userHandler.GetUsers)
		users.GET("/stats", userHandler.GetUserStats)
		users.GET("/:id", userHandler.GetUser)
		users.POST("", userHandler.CreateUser)
		users.PATCH("/:id/status", userHandler.UpdateUserStatus)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := strings.Split(cfg.UserServiceURL, ":")[2]
	logrus.Infof("User Service starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("User service failed: %v", err)
	}
}
