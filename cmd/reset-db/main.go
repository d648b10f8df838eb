package main

import (
	"github.com/sirupsen/logrus"

	"gente-backend/shared/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	logrus.Info("Starting database reset...")

	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logrus.Fatalf("Database connection failed: %v", err)
	}

	tables := []string{
		"login_attempts",
		"password_reset_attempts",
		"password_reset_tokens",
		"notifications",
		"users",
	}

	logrus.Info("Dropping all tables...")

	for _, table := range tables {
		logrus.Infof("   Dropping table: %s", table)
		db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE;")
	}

	logrus.Info("Database reset completed - all tables dropped!")
	logrus.Info("Run 'make seed' to recreate tables and seed data")
}
