package config

import (
	"os"
	"strconv"

	sharedConfig "gente-backend/shared/config"
)

// NotificationConfig extends the shared configuration with settings that
// only the notification service cares about.
type NotificationConfig struct {
	*sharedConfig.Config

	EmailConfig EmailConfig
}

type EmailConfig struct {
	EnableEmailNotification bool
	Templates               EmailTemplates
}

type EmailTemplates struct {
	PasswordResetTemplate string
	AdminEventTemplate    string
}

func LoadNotificationConfig(base *sharedConfig.Config) *NotificationConfig {
	return &NotificationConfig{
		Config: base,
		EmailConfig: EmailConfig{
			EnableEmailNotification: getEnvAsBool("EMAIL_NOTIFICATION_ENABLE", true),
			Templates: EmailTemplates{
				PasswordResetTemplate: getEnv("EMAIL_TEMPLATE_PASSWORD_RESET", "password_reset.html"),
				AdminEventTemplate:    getEnv("EMAIL_TEMPLATE_ADMIN_EVENT", "admin_event.html"),
			},
		},
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
