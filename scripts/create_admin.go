// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sanskardagade/CampusConnectMain-sub001/config"
	"github.com/sanskardagade/CampusConnectMain-sub001/database"
	"github.com/sanskardagade/CampusConnectMain-sub001/models"
)

// สร้างบัญชีเริ่มต้นหนึ่งบัญชี
// override ได้ด้วย SEED_USERNAME / SEED_PASSWORD / SEED_ROLE / SEED_DEPARTMENT
func main() {
	cfg := config.Load()
	database.Connect(cfg)

	username := envOr("SEED_USERNAME", "Admin")
	password := envOr("SEED_PASSWORD", "1234")
	role := envOr("SEED_ROLE", "admin")
	department := os.Getenv("SEED_DEPARTMENT") // จำเป็นเฉพาะ role=hod

	if role == "hod" && department == "" {
		log.Fatal("SEED_DEPARTMENT is required for role=hod")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	// ตรวจว่ามีผู้ใช้งานชื่อเดียวกันอยู่หรือไม่
	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("⚠️  User already exists with username:", username)
		os.Exit(0)
	}

	u := models.User{
		Username:   username,
		Password:   string(hashed),
		Role:       role,
		Department: department,
		Name:       username,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert user: %v", err)
	}

	fmt.Println("✅ User created successfully!")
	fmt.Println("   Username:", username)
	fmt.Println("   Role:    ", role)
	fmt.Println("   Password:", password, "(plain, remember to change later!)")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
