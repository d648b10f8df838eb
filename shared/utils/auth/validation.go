package utils

import (
	"errors"
	"regexp"
	"strings"
)

// Password policy errors. Handlers map these to their stable API codes.
var (
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrPasswordMissingSpecial = errors.New("password must contain at least one special character")
	ErrInvalidEmail           = errors.New("invalid email format")
)

const minPasswordLength = 6

var (
	emailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	specialCharPattern = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// NormalizeEmail lower-cases and trims an address. Every lookup and insert
// goes through this so the unique index sees one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the address against the same basic pattern the
// frontend applies.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the portal password policy: minimum length and
// at least one special character.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if !specialCharPattern.MatchString(password) {
		return ErrPasswordMissingSpecial
	}
	return nil
}
