package auth

import (
	"time"
)

// LoginAttempt records the outcome of a login request for throttling and
// audit purposes.
type LoginAttempt struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"size:255;index;not null"`
	IPAddress   string    `json:"ip_address" gorm:"size:45;index;not null"`
	Successful  bool      `json:"successful" gorm:"not null;default:false"`
	FailureType string    `json:"failure_type" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
