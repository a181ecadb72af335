package models

import (
	"strings"
	"time"
)

// ทำเนียบบุคลากร — ใช้ join ชื่อบนแดชบอร์ด และตรวจภาควิชาของ HOD
type Staff struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ErpStaffID string    `gorm:"size:20;not null;uniqueIndex" json:"erp_staff_id"`
	Prefix     string    `gorm:"size:20" json:"prefix"`
	FirstName  string    `gorm:"size:50;not null" json:"first_name"`
	LastName   string    `gorm:"size:50;not null" json:"last_name"`
	Department string    `gorm:"size:60;not null" json:"department"`
	Position   string    `gorm:"size:50" json:"position"`
	Email      string    `gorm:"size:50" json:"email"`
	Phone      string    `gorm:"size:15" json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *Staff) DisplayName() string {
	parts := []string{}
	for _, p := range []string{s.Prefix, s.FirstName, s.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
