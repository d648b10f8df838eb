package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gente-backend/shared/config"
	"gente-backend/shared/database/models"
	"gente-backend/shared/database/models/auth"
	"gente-backend/shared/middleware"
	utils "gente-backend/shared/utils/auth"
)

// Notifier delivers outbound mail for the auth flows. The production
// implementation is the notification-service HTTP client.
type Notifier interface {
	SendPasswordResetEmail(to, name, token string) error
}

// AuthHandler owns the authentication endpoints.
type AuthHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	jwt      *utils.JWTManager
	notifier Notifier
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, jwtManager *utils.JWTManager, notifier Notifier) *AuthHandler {
	return &AuthHandler{
		db:       db,
		cfg:      cfg,
		jwt:      jwtManager,
		notifier: notifier,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// POST /api/auth/login
// @Summary User login
// @Description Authenticate a user and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{} "Successful login"
// @Failure 400 {object} map[string]string "Missing fields"
// @Failure 401 {object} map[string]string "Invalid credentials or disabled account"
// @Failure 429 {object} map[string]string "Too many login attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
			"error":   "MISSING_FIELDS",
		})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Email and password are required",
			"error":   "MISSING_FIELDS",
		})
		return
	}

	email := utils.NormalizeEmail(req.Email)
	clientIP := c.ClientIP()

	if h.loginThrottled(email, clientIP) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message": "Too many login attempts. Please try again later.",
			"error":   "TOO_MANY_ATTEMPTS",
		})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		h.recordLoginAttempt(email, clientIP, false, "user_not_found")
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Invalid credentials",
			"error":   "INVALID_CREDENTIALS",
		})
		return
	}

	if !user.IsActive {
		h.recordLoginAttempt(email, clientIP, false, "account_disabled")
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Account disabled. Contact an administrator.",
			"error":   "ACCOUNT_DISABLED",
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		h.recordLoginAttempt(email, clientIP, false, "wrong_password")
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Invalid credentials",
			"error":   "INVALID_CREDENTIALS",
		})
		return
	}

	now := time.Now()
	if err := h.db.Model(&user).Update("last_login", now).Error; err != nil {
		logrus.WithError(err).Warn("failed to update last login timestamp")
	}
	user.LastLogin = &now

	token, err := h.jwt.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	h.recordLoginAttempt(email, clientIP, true, "")

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// POST /api/auth/register
// @Summary Register new user
// @Description Public registration. The created account always gets the regular user role.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{} "User registered"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Email already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
			"error":   "MISSING_FIELDS",
		})
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "All fields are required",
			"error":   "MISSING_FIELDS",
		})
		return
	}

	if err := utils.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid email format",
			"error":   "INVALID_EMAIL",
		})
		return
	}

	if code, message, ok := passwordPolicyError(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": message,
			"error":   code,
		})
		return
	}

	email := utils.NormalizeEmail(req.Email)

	var existing models.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": "A user with this email already exists",
			"error":   "EMAIL_ALREADY_EXISTS",
		})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	// Public registration always creates a regular user, regardless of any
	// role the caller may have supplied.
	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.db.Create(&user).Error; err != nil {
		logrus.WithError(err).Error("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// GET /api/auth/verify-token
// @Summary Verify token
// @Description Reflect back the identity established by the auth middleware
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Token is valid"
// @Failure 401 {object} map[string]string "Invalid token"
// @Router /auth/verify-token [get]
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "User not authenticated",
			"error":   "UNAUTHORIZED",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token is valid",
		"user":    identity,
	})
}

// passwordPolicyError maps a policy violation to its stable API code.
func passwordPolicyError(password string) (code, message string, ok bool) {
	switch err := utils.ValidatePassword(password); {
	case errors.Is(err, utils.ErrPasswordTooShort):
		return "WEAK_PASSWORD", "Password must be at least 6 characters", false
	case errors.Is(err, utils.ErrPasswordMissingSpecial):
		return "PASSWORD_MISSING_SPECIAL_CHAR", "Password must contain at least one special character (!@#$%^&*)", false
	default:
		return "", "", true
	}
}

func (h *AuthHandler) loginThrottled(email, ipAddress string) bool {
	var count int64
	h.db.Model(&auth.LoginAttempt{}).
		Where("(email = ? OR ip_address = ?) AND successful = ? AND created_at > ?",
			email, ipAddress, false, time.Now().Add(-h.cfg.LoginWindow)).
		Count(&count)
	return count >= int64(h.cfg.LoginMaxAttempts)
}

func (h *AuthHandler) recordLoginAttempt(email, ipAddress string, successful bool, failureType string) {
	attempt := auth.LoginAttempt{
		Email:       email,
		IPAddress:   ipAddress,
		Successful:  successful,
		FailureType: failureType,
		CreatedAt:   time.Now(),
	}
	if err := h.db.Create(&attempt).Error; err != nil {
		logrus.WithError(err).Warn("failed to record login attempt")
	}
}
