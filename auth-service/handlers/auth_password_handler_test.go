package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gente-backend/shared/database/models"
	"gente-backend/shared/database/models/auth"
)

func TestForgotPasswordMissingEmail(t *testing.T) {
	router, _, _ := setupAuthTest(t)

	w := postJSON(router, "/api/auth/forgot-password", gin.H{})
	assertCode(t, w, http.StatusBadRequest, "MISSING_EMAIL")
}

func TestForgotPasswordGenericResponse(t *testing.T) {
	router, _, notifier := setupAuthTest(t)
	registerUser(t, router, "maria@sistemagente.com")

	known := postJSON(router, "/api/auth/forgot-password", gin.H{
		"email": "maria@sistemagente.com",
	})
	unknown := postJSON(router, "/api/auth/forgot-password", gin.H{
		"email": "nobody@sistemagente.com",
	})

	if known.Code != http.StatusOK || unknown.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d, want 200 for both", known.Code, unknown.Code)
	}

	knownBody := decodeBody(t, known)
	unknownBody := decodeBody(t, unknown)
	if knownBody["message"] != unknownBody["message"] {
		t.Error("response bodies differ between known and unknown accounts")
	}

	// Only the real account gets an email.
	email := notifier.waitForEmail(t)
	if email.To != "maria@sistemagente.com" {
		t.Errorf("email sent to %s, want maria@sistemagente.com", email.To)
	}
	notifier.assertNoEmail(t)
}

func TestForgotPasswordDisabledAccount(t *testing.T) {
	router, db, notifier := setupAuthTest(t)
	registerUser(t, router, "maria@sistemagente.com")

	db.Model(&models.User{}).Where("email = ?", "maria@sistemagente.com").
		Update("is_active", false)

	w := postJSON(router, "/api/auth/forgot-password", gin.H{
		"email": "maria@sistemagente.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	notifier.assertNoEmail(t)

	var count int64
	db.Model(&auth.PasswordResetToken{}).Count(&count)
	if count != 0 {
		t.Errorf("token count = %d, want 0 for disabled account", count)
	}
}

func TestForgotPasswordSupersedesOldTokens(t *testing.T) {
	router, db, notifier := setupAuthTest(t)
	registerUser(t, router, "maria@sistemagente.com")

	postJSON(router, "/api/auth/forgot-password", gin.H{"email": "maria@sistemagente.com"})
	first := notifier.waitForEmail(t)
	postJSON(router, "/api/auth/forgot-password", gin.H{"email": "maria@sistemagente.com"})
	second := notifier.waitForEmail(t)

	if first.Token == second.Token {
		t.Fatal("both requests produced the same token")
	}

	var old auth.PasswordResetToken
	if err := db.Where("token = ?", first.Token).First(&old).Error; err != nil {
		t.Fatalf("first token not found: %v", err)
	}
	if !old.Used {
		t.Error("older token still live after a new request")
	}

	var latest auth.PasswordResetToken
	if err := db.Where("token = ?", second.Token).First(&latest).Error; err != nil {
		t.Fatalf("second token not found: %v", err)
	}
	if latest.Used {
		t.Error("latest token is not live")
	}
}

func TestForgotPasswordThrottled(t *testing.T) {
	router, _, _ := setupAuthTest(t)
	registerUser(t, router, "maria@sistemagente.com")

	for i := 0; i < 3; i++ {
		w := postJSON(router, "/api/auth/forgot-password", gin.H{
			"email": "maria@sistemagente.com",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("request %d returned %d, want 200", i+1, w.Code)
		}
	}

	w := postJSON(router, "/api/auth/forgot-password", gin.H{
		"email": "maria@sistemagente.com",
	})
	assertCode(t, w, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS")
}

func TestResetPasswordFlow(t *testing.T) {
	router, _, notifier := setupAuthTest(t)
	registerUser(t, router, "maria@sistemagente.com")

	postJSON(router, "/api/auth/forgot-password", gin.H{"email": "maria@sistemagente.com"})
	email := notifier.waitForEmail(t)

	w := postJSON(router, "/api/auth/reset-password", gin.H{
		"token":        email.Token,
		"new_password": "NovaSenha@2025",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reset returned %d: %s", w.Code, w.Body.String())
	}

	// Old password no longer works.
	oldLogin := postJSON(router, "/api/auth/login", gin.H{
		"email":    "maria@sistemagente.com",
		"password": "Usuario@2025",
	})
	if oldLogin.Code != http.StatusUnauthorized {
		t.Errorf("login with old password returned %d, want 401", oldLogin.Code)
	}

	newLogin := postJSON(router, "/api/auth/login", gin.H{
		"email":    "maria@sistemagente.com",
		"password": "NovaSenha@2025",
	})
	if newLogin.Code != http.StatusOK {
		t.Errorf("login with new password returned %d: %s", newLogin.Code, newLogin.Body.String())
	}
}

func TestResetPasswordTokenSingleUse(t *testing.T) {
	router, _, notifier := setupAuthTest(t)
	registerUser(t, router, "maria@sistemagente.com")

	postJSON(router, "/api/auth/forgot-password", gin.H{"email": "maria@sistemagente.com"})
	email := notifier.waitForEmail(t)

	first := postJSON(router, "/api/auth/reset-password", gin.H{
		"token":        email.Token,
		"new_password": "NovaSenha@2025",
	})
	if first.Code != http.StatusOK {
		t.Fatalf("first reset returned %d", first.Code)
	}

	second := postJSON(router, "/api/auth/reset-password", gin.H{
		"token":        email.Token,
		"new_password": "OutraSenha@2025",
	})
	assertCode(t, second, http.StatusBadRequest, "INVALID_TOKEN")
}

func TestResetPasswordExpiredToken(t *testing.T) {
	router, db, notifier := setupAuthTest(t)
	registerUser(t, router, "maria@sistemagente.com")

	postJSON(router, "/api/auth/forgot-password", gin.H{"email": "maria@sistemagente.com"})
	email := notifier.waitForEmail(t)

	db.Model(&auth.PasswordResetToken{}).Where("token = ?", email.Token).
		Update("expires_at", time.Now().Add(-time.Minute))

	w := postJSON(router, "/api/auth/reset-password", gin.H{
		"token":        email.Token,
		"new_password": "NovaSenha@2025",
	})
	assertCode(t, w, http.StatusBadRequest, "INVALID_TOKEN")
}

func TestResetPasswordDeactivatedOwner(t *testing.T) {
	router, db, notifier := setupAuthTest(t)
	registerUser(t, router, "maria@sistemagente.com")

	postJSON(router, "/api/auth/forgot-password", gin.H{"email": "maria@sistemagente.com"})
	email := notifier.waitForEmail(t)

	db.Model(&models.User{}).Where("email = ?", "maria@sistemagente.com").
		Update("is_active", false)

	w := postJSON(router, "/api/auth/reset-password", gin.H{
		"token":        email.Token,
		"new_password": "NovaSenha@2025",
	})
	assertCode(t, w, http.StatusBadRequest, "USER_NOT_FOUND")
}

func TestResetPasswordValidation(t *testing.T) {
	router, _, notifier := setupAuthTest(t)
	registerUser(t, router, "maria@sistemagente.com")

	postJSON(router, "/api/auth/forgot-password", gin.H{"email": "maria@sistemagente.com"})
	email := notifier.waitForEmail(t)

	tests := []struct {
		name       string
		payload    gin.H
		wantStatus int
		wantError  string
	}{
		{
			"missing token",
			gin.H{"new_password": "NovaSenha@2025"},
			http.StatusBadRequest, "MISSING_FIELDS",
		},
		{
			"unknown token",
			gin.H{"token": "no-such-token", "new_password": "NovaSenha@2025"},
			http.StatusBadRequest, "INVALID_TOKEN",
		},
		{
			"weak password",
			gin.H{"token": email.Token, "new_password": "a@b"},
			http.StatusBadRequest, "WEAK_PASSWORD",
		},
		{
			"password without special char",
			gin.H{"token": email.Token, "new_password": "abcdef123"},
			http.StatusBadRequest, "PASSWORD_MISSING_SPECIAL_CHAR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/auth/reset-password", tt.payload)
			assertCode(t, w, tt.wantStatus, tt.wantError)
		})
	}
}

func TestForgotPasswordMailFailureStillSucceeds(t *testing.T) {
	router, db, notifier := setupAuthTest(t)
	notifier.fail = true
	registerUser(t, router, "maria@sistemagente.com")

	w := postJSON(router, "/api/auth/forgot-password", gin.H{
		"email": "maria@sistemagente.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite mail failure", w.Code)
	}

	// Token was still issued; the user can retry delivery later.
	var count int64
	db.Model(&auth.PasswordResetToken{}).Where("used = ?", false).Count(&count)
	if count != 1 {
		t.Errorf("live token count = %d, want 1", count)
	}
}
