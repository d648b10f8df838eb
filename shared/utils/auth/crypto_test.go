package utils

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Usuario@2025")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "Usuario@2025" {
		t.Error("HashPassword() returned the plain password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("HashPassword() = %s, want bcrypt hash", hash)
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("Admin@2025")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPasswordHash("Admin@2025", hash) {
		t.Error("CheckPasswordHash() rejected the correct password")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Error("CheckPasswordHash() accepted a wrong password")
	}
	if CheckPasswordHash("Admin@2025", "not-a-hash") {
		t.Error("CheckPasswordHash() accepted a malformed hash")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("Usuario@2025")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("Usuario@2025")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if first == second {
		t.Error("HashPassword() produced identical hashes for the same input")
	}
}

func TestGenerateResetToken(t *testing.T) {
	token := GenerateResetToken()
	if len(token) != 36 {
		t.Errorf("GenerateResetToken() length = %d, want 36", len(token))
	}
	if token == GenerateResetToken() {
		t.Error("GenerateResetToken() produced duplicate tokens")
	}
}
