package models

import "time"

// ประเภทคำขอลา
const (
	KindShortLeave = "short_leave" // ออกนอกวิทยาเขตช่วงสั้น: วันเดียว + ช่วงเวลา
	KindLeave      = "leave"       // ลาเต็มวัน: ช่วงวันที่ from-to (รวมปลายทั้งสองข้าง)
)

// สถานะการอนุมัติ ใช้ร่วมกันทั้ง hod_approval / principal_approval / final_status
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// บทบาทผู้อนุมัติ (ค่าใน JWT role)
const (
	RoleHOD       = "hod"
	RolePrincipal = "principal"
)

type LeaveRequest struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	ErpStaffID string `json:"erp_staff_id" gorm:"size:20;index;not null"` // รหัส ERP ของบุคลากร
	Kind       string `json:"kind" gorm:"size:20;not null"`               // short_leave | leave

	// ใช้เมื่อ kind = short_leave
	LeaveDate string `json:"leave_date,omitempty" gorm:"size:10"` // YYYY-MM-DD
	StartTime string `json:"start_time,omitempty" gorm:"size:5"`  // HH:MM
	EndTime   string `json:"end_time,omitempty" gorm:"size:5"`    // HH:MM

	// ใช้เมื่อ kind = leave
	DateFrom string `json:"date_from,omitempty" gorm:"size:10"` // YYYY-MM-DD
	DateTo   string `json:"date_to,omitempty" gorm:"size:10"`   // YYYY-MM-DD

	Reason    string    `json:"reason" gorm:"type:text;not null"`
	AppliedOn time.Time `json:"applied_on" gorm:"autoCreateTime"`

	HodApproval       string `json:"hod_approval" gorm:"size:20;not null;default:pending"`
	PrincipalApproval string `json:"principal_approval" gorm:"size:20;not null;default:pending"`
	// final_status คำนวณจากสองฟิลด์ข้างบนเท่านั้น (ComputeFinalStatus)
	// เขียนพร้อมกันใน transaction เดียวเสมอ ห้ามมี path อื่น set ตรง ๆ
	FinalStatus string `json:"final_status" gorm:"size:20;not null;default:pending"`

	// ฝั่ง รปภ. — เป็นอิสระจากผลอนุมัติ (คุมประตูไม่รอเอกสาร)
	ExitStatus    bool       `json:"exit_status" gorm:"not null;default:false"`
	ExitTimestamp *time.Time `json:"exit_timestamp,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeFinalStatus รวมคำตัดสินสองฝ่ายเป็นสถานะเดียว:
// ปฏิเสธฝ่ายเดียวก็พอให้ rejected / ต้องอนุมัติครบสองฝ่ายถึง approved / ที่เหลือ pending
func ComputeFinalStatus(hod, principal string) string {
	if hod == StatusRejected || principal == StatusRejected {
		return StatusRejected
	}
	if hod == StatusApproved && principal == StatusApproved {
		return StatusApproved
	}
	return StatusPending
}

// CoversDate: คำขอนี้ครอบคลุมวันที่ date (YYYY-MM-DD) หรือไม่
func (r *LeaveRequest) CoversDate(date string) bool {
	switch r.Kind {
	case KindShortLeave:
		return r.LeaveDate == date
	case KindLeave:
		return r.DateFrom <= date && date <= r.DateTo
	}
	return false
}
