package utils

import (
	"testing"
	"time"

	"gente-backend/shared/database/models"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate(42, "admin@sistemagente.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "admin@sistemagente.com" {
		t.Errorf("Email = %s, want admin@sistemagente.com", claims.Email)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role = %s, want %s", claims.Role, models.RoleAdmin)
	}
}

func TestValidateInvalidTokens(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"tampered token", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.tampered.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Validate(tt.token); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}

func TestValidateWrongSecret(t *testing.T) {
	signer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, err := signer.Generate(1, "usuario@sistemagente.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := verifier.Validate(token); err == nil {
		t.Error("Validate() accepted token signed with a different secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	manager := &JWTManager{secret: []byte("test-secret"), expiry: -time.Minute}

	token, err := manager.Generate(1, "usuario@sistemagente.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := manager.Validate(token); err == nil {
		t.Error("Validate() accepted expired token")
	}
}

func TestDefaultExpiry(t *testing.T) {
	manager := NewJWTManager("test-secret", 0)
	if manager.Expiry() != 168*time.Hour {
		t.Errorf("Expiry() = %v, want %v", manager.Expiry(), 168*time.Hour)
	}
}
