package database

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gente-backend/shared/config"
	"gente-backend/shared/database/models"
	utils "gente-backend/shared/utils/auth"
)

// Seed makes sure the bootstrap accounts exist. The super admin credentials
// come from configuration; the admin and regular user are fixed development
// accounts.
func Seed(db *gorm.DB, cfg *config.Config) error {
	logrus.Info("checking database seed data")

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Infof("database already has %d user(s), skipping seed", count)
		return nil
	}

	seeds := []struct {
		firstName string
		lastName  string
		email     string
		password  string
		role      models.Role
	}{
		{"Super", "Admin", cfg.SuperAdminEmail, cfg.SuperAdminPassword, models.RoleSuperAdmin},
		{"Admin", "Sistema", "admin@sistemagente.com", "Admin@2025", models.RoleAdmin},
		{"Usuario", "Teste", "usuario@sistemagente.com", "Usuario@2025", models.RoleUser},
	}

	for _, seed := range seeds {
		if err := createUser(db, seed.firstName, seed.lastName, seed.email, seed.password, seed.role); err != nil {
			return err
		}
		logrus.Infof("seed user created: %s (%s)", seed.email, seed.role)
	}

	return nil
}

func createUser(db *gorm.DB, firstName, lastName, email, password string, role models.Role) error {
	email = utils.NormalizeEmail(email)

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return db.Create(&user).Error
}
