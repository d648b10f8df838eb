package utils

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Admin@SistemaGente.com", "admin@sistemagente.com"},
		{"  usuario@sistemagente.com  ", "usuario@sistemagente.com"},
		{"plain@example.com", "plain@example.com"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "user@example.com", false},
		{"valid with subdomain", "user@mail.example.com", false},
		{"missing at", "userexample.com", true},
		{"missing domain", "user@", true},
		{"missing tld", "user@example", true},
		{"contains space", "us er@example.com", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid password", "Usuario@2025", nil},
		{"minimum length with special", "ab!cde", nil},
		{"too short", "a@b", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
		{"no special character", "abcdef123", ErrPasswordMissingSpecial},
		{"special characters only", "!@#$%^", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePassword(%q) error = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
