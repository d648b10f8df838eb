package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gente-backend/shared/database/models"
	"gente-backend/shared/database/models/auth"
	utils "gente-backend/shared/utils/auth"
)

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

// POST /api/auth/forgot-password
// @Summary Request password reset
// @Description Sends a reset email when the account exists. Responds identically either way.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string "Generic acknowledgement"
// @Failure 400 {object} map[string]string "Missing email"
// @Failure 429 {object} map[string]string "Too many reset requests"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Email is required",
			"error":   "MISSING_EMAIL",
		})
		return
	}

	email := utils.NormalizeEmail(req.Email)
	clientIP := c.ClientIP()

	if h.resetThrottled(email, clientIP) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message": "Too many password reset requests. Please try again later.",
			"error":   "TOO_MANY_ATTEMPTS",
		})
		return
	}
	h.recordResetAttempt(email, clientIP)

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		// Do not reveal whether the account exists.
		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
		return
	}

	token, err := h.issueResetToken(&user)
	if err != nil {
		logrus.WithError(err).Error("failed to create password reset token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	// Mail delivery must not delay or alter the response. Failures are
	// logged and the generic acknowledgement is returned regardless.
	go func(to, name, token string) {
		if err := h.notifier.SendPasswordResetEmail(to, name, token); err != nil {
			logrus.WithError(err).WithField("email", to).Error("failed to send password reset email")
		}
	}(user.Email, user.FirstName, token)

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

// POST /api/auth/reset-password
// @Summary Reset password
// @Description Consumes a reset token and sets a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} map[string]string "Password updated"
// @Failure 400 {object} map[string]string "Invalid token or weak password"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Token and new password are required",
			"error":   "MISSING_FIELDS",
		})
		return
	}

	if code, message, ok := passwordPolicyError(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": message,
			"error":   code,
		})
		return
	}

	var resetToken auth.PasswordResetToken
	if err := h.db.Where("token = ?", req.Token).First(&resetToken).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid or expired reset token",
			"error":   "INVALID_TOKEN",
		})
		return
	}

	if !resetToken.Live(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid or expired reset token",
			"error":   "INVALID_TOKEN",
		})
		return
	}

	// An absent owner and a deactivated one get the same answer; the token
	// holder learns nothing about the account state.
	var user models.User
	if err := h.db.First(&user, resetToken.UserID).Error; err != nil || !user.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "User not found",
			"error":   "USER_NOT_FOUND",
		})
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("password_hash", hashed).Error; err != nil {
			return err
		}
		return tx.Model(&auth.PasswordResetToken{}).Where("id = ?", resetToken.ID).
			Update("used", true).Error
	})
	if err != nil {
		logrus.WithError(err).Error("failed to reset password")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}

// issueResetToken invalidates any live tokens for the user and creates a
// fresh one inside a single transaction, so at most one usable token exists
// per account at any time.
func (h *AuthHandler) issueResetToken(user *models.User) (string, error) {
	token := utils.GenerateResetToken()
	now := time.Now()

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&auth.PasswordResetToken{}).
			Where("user_id = ? AND used = ?", user.ID, false).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(&auth.PasswordResetToken{
			UserID:    user.ID,
			Token:     token,
			Email:     user.Email,
			ExpiresAt: now.Add(h.cfg.ResetTokenTTL),
			Used:      false,
			CreatedAt: now,
		}).Error
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (h *AuthHandler) resetThrottled(email, ipAddress string) bool {
	var count int64
	h.db.Model(&auth.PasswordResetAttempt{}).
		Where("(email = ? OR ip_address = ?) AND created_at > ?",
			email, ipAddress, time.Now().Add(-h.cfg.ResetWindow)).
		Count(&count)
	return count >= int64(h.cfg.ResetMaxAttempts)
}

func (h *AuthHandler) recordResetAttempt(email, ipAddress string) {
	attempt := auth.PasswordResetAttempt{
		Email:     email,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
	}
	if err := h.db.Create(&attempt).Error; err != nil {
		logrus.WithError(err).Warn("failed to record password reset attempt")
	}
}
