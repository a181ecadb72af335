package database

import (
	"errors"
	"log"
	"net"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sanskardagade/CampusConnectMain-sub001/config"
	"github.com/sanskardagade/CampusConnectMain-sub001/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate แยกออกมาจาก Connect เพื่อให้เทสต์เรียกกับ DB ของตัวเองได้
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Staff{},
		&models.LeaveRequest{},
		&models.Notification{},
	)
}

// IsTransient: error ฝั่ง storage ที่ลองซ้ำได้ (เน็ตหลุด/timeout)
// not found หรือ validation ไม่นับ — พวกนั้นลองซ้ำไปก็ผลเดิม
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe")
}

// WithRetry: ลองซ้ำหนึ่งครั้งเฉพาะ transient error
// (write ของเราทุกตัวเป็น conditional/idempotent อยู่แล้ว เลยซ้ำได้ปลอดภัย)
func WithRetry(fn func() error) error {
	err := fn()
	if err != nil && IsTransient(err) {
		log.Printf("[storage] transient error, retrying once: %v", err)
		time.Sleep(200 * time.Millisecond)
		err = fn()
	}
	return err
}
