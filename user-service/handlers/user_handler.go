package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gente-backend/shared/clients"
	"gente-backend/shared/database/models"
	"gente-backend/shared/database/models/notification"
	"gente-backend/shared/middleware"
	utils "gente-backend/shared/utils/auth"
	"gente-backend/shared/utils/query"
)

// EventPublisher pushes administrative events to the notification service.
type EventPublisher interface {
	PublishAdminEvent(event clients.AdminEventRequest) error
}

// UserHandler owns the user administration endpoints.
type UserHandler struct {
	db        *gorm.DB
	publisher EventPublisher
}

func NewUserHandler(db *gorm.DB, publisher EventPublisher) *UserHandler {
	return &UserHandler{db: db, publisher: publisher}
}

// CreateUserRequest represents request body for creating a user
type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// UserStatsResponse aggregates user counts for the admin dashboard
type UserStatsResponse struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByRole   map[string]int64 `json:"by_role"`
}

// GetUsers retrieves all users with pagination and filtering
// @Summary Get all users
// @Description Get all users with pagination, filtering, sorting and search
// @Tags users
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param limit query int false "Items per page (default: 10)"
// @Param search query string false "Search term across name and email"
// @Param filters[role] query string false "Filter by role (super_admin, admin, user)"
// @Param filters[is_active] query bool false "Filter by active status"
// @Param sort[field] query string false "Sort field (email, first_name, last_name, created_at)"
// @Param sort[order] query string false "Sort order (asc, desc)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users [get]
func (h *UserHandler) GetUsers(ctx *gin.Context) {
	params := query.ParseQueryParams(ctx)

	allowedFilters := map[string]string{
		"role":      "role",
		"is_active": "is_active",
	}

	allowedSortFields := map[string]string{
		"email":      "email",
		"first_name": "first_name",
		"last_name":  "last_name",
		"role":       "role",
		"created_at": "created_at",
	}

	searchFields := []string{"first_name", "last_name", "email"}

	baseQuery := h.db.Model(&models.User{})
	filteredQuery := query.ApplyFilters(baseQuery, params.Filters, allowedFilters)
	searchedQuery := query.ApplySearch(filteredQuery, params.Search, searchFields)

	var total int64
	searchedQuery.Count(&total)

	finalQuery := query.ApplySort(searchedQuery, params.Sort, allowedSortFields)
	finalQuery = query.ApplyPagination(finalQuery, params.Page, params.Limit)

	var users []models.User
	if err := finalQuery.Find(&users).Error; err != nil {
		logrus.WithError(err).Error("failed to list users")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	pagination := query.BuildPaginationResponse(params.Page, params.Limit, total)

	ctx.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

// GetUserStats returns aggregate user counts
// @Summary Get user statistics
// @Description Aggregate counts of users by status and role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserStatsResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/stats [get]
func (h *UserHandler) GetUserStats(ctx *gin.Context) {
	var stats UserStatsResponse
	stats.ByRole = make(map[string]int64)

	h.db.Model(&models.User{}).Count(&stats.Total)
	h.db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.Active)
	stats.Inactive = stats.Total - stats.Active

	for _, role := range models.AllRoles {
		var count int64
		h.db.Model(&models.User{}).Where("role = ?", role).Count(&count)
		stats.ByRole[string(role)] = count
	}

	ctx.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetUser retrieves a single user by ID
// @Summary Get user by ID
// @Description Get detailed information about a specific user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid user ID"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"message": "User not found",
				"error":   "USER_NOT_FOUND",
			})
			return
		}
		logrus.WithError(err).Error("failed to retrieve user")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// CreateUser creates a new user with an explicit role
// @Summary Create a new user
// @Description Create a user account. Only a super admin may create another super admin.
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "Created user"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 409 {object} map[string]string "Email already exists"
// @Router /users [post]
func (h *UserHandler) CreateUser(ctx *gin.Context) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"message": "User not authenticated",
			"error":   "UNAUTHORIZED",
		})
		return
	}

	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
			"error":   "MISSING_FIELDS",
		})
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "All fields are required",
			"error":   "MISSING_FIELDS",
		})
		return
	}

	if err := utils.ValidateEmail(req.Email); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid email format",
			"error":   "INVALID_EMAIL",
		})
		return
	}

	if code, message, ok := passwordPolicyError(req.Password); !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": message,
			"error":   code,
		})
		return
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid role",
			"error":   "INVALID_ROLE",
		})
		return
	}

	if !identity.Role.CanAssign(role) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"message": "Only a super admin can create super admin accounts",
			"error":   "INSUFFICIENT_PERMISSIONS",
		})
		return
	}

	email := utils.NormalizeEmail(req.Email)

	var existing models.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		ctx.JSON(http.StatusConflict, gin.H{
			"message": "A user with this email already exists",
			"error":   "EMAIL_ALREADY_EXISTS",
		})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.db.Create(&user).Error; err != nil {
		logrus.WithError(err).Error("failed to create user")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	h.publishEvent("user_created", notification.NotificationLevelInfo, "User created",
		fmt.Sprintf("%s %s (%s) was created by %s", user.FirstName, user.LastName, user.Email, identity.Email),
		user.ID)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// UpdateStatusRequest represents request body for changing a user's active flag
type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

// UpdateUserStatus sets a user's active flag
// @Summary Update user status
// @Description Enable or disable a user account. Users cannot change their own status, and only a super admin may change a super admin.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param status body UpdateStatusRequest true "New status"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Updated user"
// @Failure 400 {object} map[string]string "Invalid ID, status or self modification"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id}/status [patch]
func (h *UserHandler) UpdateUserStatus(ctx *gin.Context) {
	identity, ok := middleware.CurrentIdentity(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"message": "User not authenticated",
			"error":   "UNAUTHORIZED",
		})
		return
	}

	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "is_active must be a boolean",
			"error":   "INVALID_STATUS",
		})
		return
	}

	if userID == identity.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "You cannot change your own account status",
			"error":   "CANNOT_MODIFY_SELF",
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"message": "User not found",
				"error":   "USER_NOT_FOUND",
			})
			return
		}
		logrus.WithError(err).Error("failed to retrieve user")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}

	if !identity.Role.CanToggle(user.Role) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"message": "Only a super admin can change a super admin account",
			"error":   "INSUFFICIENT_PERMISSIONS",
		})
		return
	}

	newStatus := *req.IsActive
	if err := h.db.Model(&user).Update("is_active", newStatus).Error; err != nil {
		logrus.WithError(err).Error("failed to update user status")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "Internal server error",
			"error":   "INTERNAL_ERROR",
		})
		return
	}
	user.IsActive = newStatus

	action := "disabled"
	if newStatus {
		action = "enabled"
	}
	h.publishEvent("user_status_changed", notification.NotificationLevelWarning, "User status changed",
		fmt.Sprintf("%s %s (%s) was %s by %s", user.FirstName, user.LastName, user.Email, action, identity.Email),
		user.ID)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User status updated successfully",
		"user":    user,
	})
}

func parseUserID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid user ID",
			"error":   "INVALID_ID",
		})
		return 0, false
	}
	return uint(id), true
}

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

// publishEvent forwards the event in the background so administration
// responses never wait on the notification service.
func (h *UserHandler) publishEvent(eventType string, level notification.NotificationLevel, title, message string, entityID uint) {
	id := entityID
	go func() {
		err := h.publisher.PublishAdminEvent(clients.AdminEventRequest{
			Type:     eventType,
			Level:    level,
			Title:    title,
			Message:  message,
			Entity:   "user",
			EntityID: &id,
		})
		if err != nil {
			logrus.WithError(err).Warn("failed to publish admin event")
		}
	}()
}
