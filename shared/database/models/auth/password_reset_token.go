package auth

import (
	"time"

	"gente-backend/shared/database/models"
)

// PasswordResetToken is a single-use credential for the forgot-password flow.
// At most one unused, unexpired token exists per user: issuing a new one marks
// all prior unused tokens as used in the same transaction.
type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Token     string    `json:"token" gorm:"size:255;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:255;index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	Used      bool      `json:"used" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`

	User models.User `json:"-" gorm:"foreignKey:UserID"`
}

// Live reports whether the token can still redeem a password reset.
func (t *PasswordResetToken) Live(now time.Time) bool {
	return !t.Used && t.ExpiresAt.After(now)
}
