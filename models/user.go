package models

import "time"

type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Password   string    `json:"-" gorm:"not null"`            // เก็บ bcrypt hash
	Role       string    `json:"role" gorm:"size:20;not null"` // "staff" | "hod" | "principal" | "security" | "admin"
	Name       string    `json:"name" gorm:"size:120"`
	Department string    `json:"department" gorm:"size:60"`   // ใช้กับ role=hod (ภาควิชาที่ดูแล)
	ErpStaffID string    `json:"erp_staff_id" gorm:"size:20"` // ผูกกับทำเนียบบุคลากร ถ้ามี
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
