package utils

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashPassword derives a salted bcrypt digest from a plaintext password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether the plaintext password matches the
// stored digest. Any bcrypt error counts as a mismatch.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateResetToken returns an opaque random token for password reset links.
func GenerateResetToken() string {
	return uuid.NewString()
}
