package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gente-backend/api-gateway/middleware"
	"gente-backend/api-gateway/routes"
	"gente-backend/shared/config"

	_ "gente-backend/docs/swagger"
)

// @title Sistema GENTE API
// @version 1.0
// @description User management and authentication API for Sistema GENTE
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email suporte@sistemagente.com

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @tag.name auth
// @tag.description Authentication operations

// @tag.name users
// @tag.description User management operations

// @tag.name notifications
// @tag.description Notification operations

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	cfg := config.Load()

	rateLimiter := middleware.NewRateLimiter(cfg)
	defer rateLimiter.Close()

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(rateLimiter.GlobalRateLimitMiddleware())

	// Health check endpoint
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "gateway"})
	})

	// Auth routes. The auth service does its own credential throttling.
	router.Any("/api/auth/*path", routes.ProxyToService(cfg, "auth"))

	// User administration routes. Role checks happen in the user service,
	// where the caller's account can be loaded alongside the token.
	router.Any("/api/users", routes.ProxyToService(cfg, "user"))
	router.Any("/api/users/*path", routes.ProxyToService(cfg, "user"))

	// Notification routes
	router.Any("/api/notifications", routes.ProxyToService(cfg, "notification"))
	router.Any("/api/notifications/*path", routes.ProxyToService(cfg, "notification"))

	// WebSocket routes
	router.GET("/ws/notifications/:user_id", routes.ProxyToService(cfg, "notification"))

	// Swagger documentation UI, development only
	router.GET("/swagger/*any", func(c *gin.Context) {
		if gin.Mode() == gin.DebugMode {
			ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
		} else {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Swagger documentation not available in production",
			})
		}
	})

	port := strings.Split(cfg.GatewayURL, ":")[2]
	logrus.Infof("API Gateway is running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
