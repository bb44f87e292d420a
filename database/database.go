package database

import (
	"log"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/martin7tsang/student-management-system/config"
	"github.com/martin7tsang/student-management-system/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Course{},
		&models.Grade{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Default credentials for the seeded account. There is no self-registration,
// so first login always goes through this user.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

// EnsureAdmin seeds the admin account once. Safe to call on every startup:
// it checks for an existing row before inserting anything.
func EnsureAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("username = ?", AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := models.User{
		Username:     AdminUsername,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(&u).Error; err != nil {
		return err
	}
	slog.Info("seeded default admin user", "username", AdminUsername)
	return nil
}
