package main

import (
	"github.com/sirupsen/logrus"

	"gente-backend/shared/config"
	"gente-backend/shared/database"
)

func main() {
	logrus.Info("Starting database seeding...")

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	if err := database.Seed(db, cfg); err != nil {
		logrus.Fatalf("Failed to seed database: %v", err)
	}

	logrus.Info("Database seeding completed successfully!")
}
