package models

import "time"

// ข้อความแจ้งผลการอนุมัติ ให้ FE แสดงชั่วคราว (toast/แถบแจ้งเตือน)
// insert แบบ fire-and-forget — พังก็ไม่ทำให้คำตัดสินล้ม
type Notification struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	LeaveRequestID uint      `json:"leave_request_id" gorm:"index;not null"`
	ErpStaffID     string    `json:"erp_staff_id" gorm:"size:20;index;not null"`
	ActorRole      string    `json:"actor_role" gorm:"size:20;not null"` // hod | principal
	Decision       string    `json:"decision" gorm:"size:20;not null"`   // approved | rejected
	Message        string    `json:"message" gorm:"type:text"`           // เช่น "Approved short leave for ..."
	CreatedAt      time.Time `json:"created_at"`
}
