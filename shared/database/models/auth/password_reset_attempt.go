package auth

import (
	"time"
)

// PasswordResetAttempt tracks forgot-password requests for rate limiting.
type PasswordResetAttempt struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255;index;not null"`
	IPAddress string    `json:"ip_address" gorm:"size:45;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
