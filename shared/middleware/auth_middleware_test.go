package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gente-backend/shared/database"
	"gente-backend/shared/database/models"
	utils "gente-backend/shared/utils/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role, active bool) models.User {
	t.Helper()

	hash, err := utils.HashPassword("Test@2025")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func protectedRouter(db *gorm.DB, jwtManager *utils.JWTManager, gates ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth(db, jwtManager)}, gates...)
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user": identity})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestRequireAuthMissingToken(t *testing.T) {
	db := openTestDB(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	router := protectedRouter(db, jwtManager)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc123"},
		{"missing token", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			assertErrorCode(t, w, "UNAUTHORIZED")
		})
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	db := openTestDB(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	router := protectedRouter(db, jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-valid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	assertErrorCode(t, w, "INVALID_TOKEN")
}

func TestRequireAuthInactiveUser(t *testing.T) {
	db := openTestDB(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	user := createTestUser(t, db, "inactive@sistemagente.com", models.RoleUser, false)
	router := protectedRouter(db, jwtManager)

	token, err := jwtManager.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthActiveUser(t *testing.T) {
	db := openTestDB(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	user := createTestUser(t, db, "active@sistemagente.com", models.RoleAdmin, true)
	router := protectedRouter(db, jwtManager)

	token, err := jwtManager.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		User Identity `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.User.ID != user.ID || body.User.Role != models.RoleAdmin {
		t.Errorf("identity = %+v, want id %d role %s", body.User, user.ID, models.RoleAdmin)
	}
}

func TestRequireRole(t *testing.T) {
	db := openTestDB(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	admin := createTestUser(t, db, "admin@sistemagente.com", models.RoleAdmin, true)
	regular := createTestUser(t, db, "usuario@sistemagente.com", models.RoleUser, true)
	router := protectedRouter(db, jwtManager, RequireAdmin())

	tests := []struct {
		name       string
		user       models.User
		wantStatus int
	}{
		{"admin allowed", admin, http.StatusOK},
		{"regular user forbidden", regular, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwtManager.Generate(tt.user.ID, tt.user.Email, tt.user.Role)
			if err != nil {
				t.Fatalf("failed to generate token: %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusForbidden {
				assertErrorCode(t, w, "FORBIDDEN")
			}
		})
	}
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != want {
		t.Errorf("error code = %q, want %q", body.Error, want)
	}
}
