package models

import (
	"time"
)

// User is an account in the portal. Accounts are never hard-deleted;
// deactivation (IsActive=false) is the only destructive operation exposed.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	FirstName    string     `json:"first_name" gorm:"size:100;not null"`
	LastName     string     `json:"last_name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         Role       `json:"role" gorm:"size:20;not null;default:'user'"`
	IsActive     bool       `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
