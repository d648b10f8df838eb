package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every process-wide setting. It is built once by Load and
// passed explicitly to the components that need it; there is no package
// level instance.
type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Password reset
	ResetTokenTTL time.Duration

	// Bootstrap accounts
	SuperAdminEmail    string
	SuperAdminPassword string

	// Redis (gateway rate limiting)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Email
	EmailFrom     string
	EmailFromName string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPUseTLS    bool

	// Gateway rate limiting
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration

	// Login / password reset throttling
	LoginMaxAttempts int
	LoginWindow      time.Duration
	ResetMaxAttempts int
	ResetWindow      time.Duration

	// Frontend URL (reset links, CORS, websocket origin check)
	FrontendURL string

	// Service URLs
	GatewayURL             string
	AuthServiceURL         string
	UserServiceURL         string
	NotificationServiceURL string
}

// Load reads the .env file (when present) and the process environment and
// returns an immutable configuration value.
func Load() *Config {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	loaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			logrus.Infof("environment loaded from %s", path)
			loaded = true
			break
		}
	}
	if !loaded {
		logrus.Warn(".env file not found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "sistema_gente"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "sistema-gente-dev-secret"),
		JWTExpiry: time.Duration(getEnvAsInt("JWT_EXPIRE_HOURS", 168)) * time.Hour,

		ResetTokenTTL: time.Duration(getEnvAsInt("RESET_TOKEN_TTL_MINUTES", 60)) * time.Minute,

		SuperAdminEmail:    getEnv("SUPER_ADMIN_EMAIL", "superadmin@sistemagente.com"),
		SuperAdminPassword: getEnv("SUPER_ADMIN_PASSWORD", "SuperAdmin@2025"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		EmailFrom:     getEnv("EMAIL_FROM", "noreply@sistemagente.com"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Sistema GENTE"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:    getEnvAsBool("SMTP_USE_TLS", false),

		RateLimitMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:      time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:      time.Duration(getEnvAsInt("LOGIN_WINDOW_MINUTES", 15)) * time.Minute,
		ResetMaxAttempts: getEnvAsInt("PASSWORD_RESET_MAX_ATTEMPTS", 3),
		ResetWindow:      time.Duration(getEnvAsInt("PASSWORD_RESET_WINDOW_MINUTES", 15)) * time.Minute,

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		GatewayURL:             getEnv("API_GATEWAY_URL", "http://localhost:8000"),
		AuthServiceURL:         getEnv("AUTH_SERVICE_URL", "http://localhost:8001"),
		UserServiceURL:         getEnv("USER_SERVICE_URL", "http://localhost:8002"),
		NotificationServiceURL: getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8003"),
	}
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// RedisAddr returns the host:port address of the redis instance.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
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
