// scripts/create_admin.go
//
// Standalone utility to (re)create the admin account outside the normal
// startup seeding, e.g. after a lockout. Resets the password when the user
// already exists.
package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/martin7tsang/student-management-system/config"
	"github.com/martin7tsang/student-management-system/database"
	"github.com/martin7tsang/student-management-system/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	hashed, err := bcrypt.GenerateFromPassword([]byte(database.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	err = database.DB.Where("username = ?", database.AdminUsername).First(&existing).Error
	switch {
	case err == nil:
		existing.PasswordHash = string(hashed)
		existing.IsAdmin = true
		if err := database.DB.Save(&existing).Error; err != nil {
			log.Fatalf("failed to reset admin: %v", err)
		}
		fmt.Println("Admin password reset for username:", database.AdminUsername)
	case err == gorm.ErrRecordNotFound:
		u := models.User{
			Username:     database.AdminUsername,
			PasswordHash: string(hashed),
			IsAdmin:      true,
		}
		if err := database.DB.Create(&u).Error; err != nil {
			log.Fatalf("failed to insert admin: %v", err)
		}
		fmt.Println("Admin user created:")
		fmt.Println("   Username:", database.AdminUsername)
		fmt.Println("   Password:", database.AdminPassword, "(change after first login)")
	default:
		log.Fatalf("failed to query users: %v", err)
	}
}
