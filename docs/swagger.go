// Package docs Sistema GENTE API documentation
package docs

// Swagger documentation info
// @title Sistema GENTE API
// @version 1.0
// @description Central API documentation for the Sistema GENTE backend services
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email suporte@sistemagente.com

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

// Auth Service Endpoints
// @tag.name auth
// @tag.description Authentication, registration and password recovery

// User Service Endpoints
// @tag.name users
// @tag.description User administration

// Notification Service Endpoints
// @tag.name notifications
// @tag.description Notifications and email delivery
// @tag.name email
// @tag.description Outbound email
// @tag.name websocket
// @tag.description Real-time notification channel
