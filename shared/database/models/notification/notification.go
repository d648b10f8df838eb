package notification

import (
	"time"
)

// NotificationLevel represents the severity level of a notification.
type NotificationLevel string

const (
	NotificationLevelSuccess NotificationLevel = "success"
	NotificationLevelError   NotificationLevel = "error"
	NotificationLevelWarning NotificationLevel = "warning"
	NotificationLevelInfo    NotificationLevel = "info"
)

// Notification is a persisted administrative event (account created,
// activated, deactivated) surfaced on the admin dashboard.
type Notification struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	UserID    *uint             `json:"user_id,omitempty" gorm:"index"`
	Type      string            `json:"type" gorm:"size:50;not null"`
	Level     NotificationLevel `json:"level" gorm:"size:20;not null;default:'info'"`
	Title     string            `json:"title" gorm:"size:200;not null"`
	Message   string            `json:"message" gorm:"type:text;not null"`
	Entity    string            `json:"entity,omitempty" gorm:"size:100"`
	EntityID  *uint             `json:"entity_id,omitempty"`
	IsRead    bool              `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time         `json:"created_at" gorm:"autoCreateTime;index"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
}

// TableName returns the table name for Notification.
func (Notification) TableName() string {
	return "notifications"
}

// WebSocketMessage is the live-push counterpart of a Notification.
type WebSocketMessage struct {
	Type      string            `json:"type"`
	Level     NotificationLevel `json:"level"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Entity    string            `json:"entity,omitempty"`
	EntityID  *uint             `json:"entity_id,omitempty"`
	UserID    *uint             `json:"user_id,omitempty"`
}
