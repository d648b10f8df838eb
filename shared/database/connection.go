package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gente-backend/shared/config"
	"gente-backend/shared/database/models"
	"gente-backend/shared/database/models/auth"
	"gente-backend/shared/database/models/notification"
)

// Models enumerates every persisted type, in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&auth.PasswordResetToken{},
		&auth.LoginAttempt{},
		&auth.PasswordResetAttempt{},
		&notification.Notification{},
	}
}

// Connect opens the postgres connection, configures the pool and runs
// migrations. The handle is returned to the caller; there is no package
// level instance.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg)),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("database connection established")

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	migrator := db.Migrator()

	allTablesExist := true
	for _, model := range Models() {
		if !migrator.HasTable(model) {
			allTablesExist = false
			break
		}
	}
	if allTablesExist {
		logrus.Info("database schema is up to date")
		return nil
	}

	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	logrus.Info("database migrations completed")
	return nil
}

// Close shuts down the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func logLevel(cfg *config.Config) logger.LogLevel {
	if cfg.DBHost == "localhost" || cfg.DBHost == "127.0.0.1" {
		return logger.Warn
	}
	return logger.Error
}
