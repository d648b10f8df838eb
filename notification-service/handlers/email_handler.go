package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gente-backend/notification-service/services"
)

// EmailHandler handles email-related HTTP requests
type EmailHandler struct {
	emailService *services.EmailService
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(emailService *services.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// PasswordResetEmailRequest is the payload for the reset email endpoint
type PasswordResetEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Token string `json:"token" binding:"required"`
}

// SendEmail godoc
// @Summary Send email
// @Description Send an email through the notification service
// @Tags email
// @Accept json
// @Produce json
// @Param email body services.EmailRequest true "Email request"
// @Success 200 {object} services.EmailResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /notifications/email/send [post]
func (eh *EmailHandler) SendEmail(c *gin.Context) {
	var request services.EmailRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	response, err := eh.emailService.SendEmail(request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send email",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SendPasswordResetEmail godoc
// @Summary Send password reset email
// @Description Send a password reset email containing the reset link
// @Tags email
// @Accept json
// @Produce json
// @Param email body PasswordResetEmailRequest true "Password reset email request"
// @Success 200 {object} services.EmailResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /notifications/email/password-reset [post]
func (eh *EmailHandler) SendPasswordResetEmail(c *gin.Context) {
	var request PasswordResetEmailRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	response, err := eh.emailService.SendPasswordResetEmail(request.Email, request.Name, request.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to send password reset email",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
