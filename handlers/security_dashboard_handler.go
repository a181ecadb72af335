package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sanskardagade/CampusConnectMain-sub001/database"
	"github.com/sanskardagade/CampusConnectMain-sub001/models"
)

type SecurityDashboardHandler struct{}

func NewSecurityDashboardHandler() *SecurityDashboardHandler { return &SecurityDashboardHandler{} }

// แถวบนแดชบอร์ด รปภ. = คำขอลา + ชื่อบุคลากร + สถานะออกนอกวิทยาเขต
// แนบทั้ง raw approval สองฟิลด์และ final_status มาให้ครบ ฝั่ง FE ไม่ต้องคำนวณเอง
type dashboardRow struct {
	ID                uint       `json:"id"`
	ErpStaffID        string     `json:"erp_staff_id"`
	StaffName         string     `json:"staff_name"`
	Department        string     `json:"department"`
	Kind              string     `json:"kind"`
	LeaveDate         string     `json:"leave_date,omitempty"`
	StartTime         string     `json:"start_time,omitempty"`
	EndTime           string     `json:"end_time,omitempty"`
	DateFrom          string     `json:"date_from,omitempty"`
	DateTo            string     `json:"date_to,omitempty"`
	Reason            string     `json:"reason"`
	AppliedOn         time.Time  `json:"applied_on"`
	HodApproval       string     `json:"hod_approval"`
	PrincipalApproval string     `json:"principal_approval"`
	FinalStatus       string     `json:"final_status"`
	ExitStatus        bool       `json:"exit_status"`
	ExitTimestamp     *time.Time `json:"exit_timestamp,omitempty"`
}

// แปลง selector จาก FE ("today"/"yesterday"/YYYY-MM-DD) เป็นวันที่เดียว
func resolveDate(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "today":
		return time.Now().Format("2006-01-02"), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", err
	}
	return s, nil
}

// เงื่อนไข "คำขอครอบคลุมวันที่ date" — คู่กับ models.(*LeaveRequest).CoversDate
func coveringScope(tx *gorm.DB, date string) *gorm.DB {
	// มีวงเล็บครอบทั้งก้อน — GORM ต่อ Where ด้วย AND ตรง ๆ ไม่ครอบให้
	return tx.Where(
		"((kind = ? AND leave_date = ?) OR (kind = ? AND date_from <= ? AND date_to >= ?))",
		models.KindShortLeave, date, models.KindLeave, date, date,
	)
}

// GET /security-dashboard?date=today|yesterday|YYYY-MM-DD
func (h *SecurityDashboardHandler) List(c echo.Context) error {
	date, err := resolveDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}

	// inner join ทำเนียบบุคลากร — ได้ชื่อมาเรียง และตัดแถวที่ไม่มีเจ้าของจริงทิ้งในตัว
	type scanRow struct {
		models.LeaveRequest
		Prefix     string
		FirstName  string
		LastName   string
		Department string
	}
	var raw []scanRow

	tx := database.DB.Table("leave_requests").
		Select("leave_requests.*, staffs.prefix, staffs.first_name, staffs.last_name, staffs.department").
		Joins("JOIN staffs ON staffs.erp_staff_id = leave_requests.erp_staff_id")
	tx = coveringScope(tx, date)
	if err := tx.Order("staffs.first_name ASC, staffs.last_name ASC, leave_requests.id ASC").
		Scan(&raw).Error; err != nil {
		return storageError(c, err)
	}

	out := make([]dashboardRow, 0, len(raw))
	for _, r := range raw {
		st := models.Staff{Prefix: r.Prefix, FirstName: r.FirstName, LastName: r.LastName}
		out = append(out, dashboardRow{
			ID:                r.ID,
			ErpStaffID:        r.ErpStaffID,
			StaffName:         st.DisplayName(),
			Department:        r.Department,
			Kind:              r.Kind,
			LeaveDate:         r.LeaveDate,
			StartTime:         r.StartTime,
			EndTime:           r.EndTime,
			DateFrom:          r.DateFrom,
			DateTo:            r.DateTo,
			Reason:            r.Reason,
			AppliedOn:         r.AppliedOn,
			HodApproval:       r.HodApproval,
			PrincipalApproval: r.PrincipalApproval,
			FinalStatus:       r.FinalStatus,
			ExitStatus:        r.ExitStatus,
			ExitTimestamp:     r.ExitTimestamp,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"date": date, "rows": out})
}

type exitReq struct {
	ErpStaffID string `json:"erp_staff_id"`
}

// หาคำขอของบุคลากรที่ครอบคลุม "วันนี้" — ไม่สน final_status
// (การคุมประตูรอเอกสารไม่ได้ ใบลายัง pending ก็ต้องบันทึกออกได้)
func findCoveringToday(erp string) (*models.LeaveRequest, error) {
	today := time.Now().Format("2006-01-02")
	var row models.LeaveRequest
	tx := database.DB.Where("erp_staff_id = ?", erp)
	tx = coveringScope(tx, today)
	if err := tx.Order("applied_on DESC, id DESC").First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// POST /security-dashboard/exit — บันทึกว่าออกนอกวิทยาเขตแล้ว
func (h *SecurityDashboardHandler) MarkExit(c echo.Context) error {
	var req exitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	erp := strings.TrimSpace(req.ErpStaffID)
	if erp == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	row, err := findCoveringToday(erp)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return storageError(c, err)
	}

	// conditional write: สำเร็จได้คนเดียว — ใครมาช้า (หรือกดซ้ำ) เจอ ALREADY_EXITED
	// และ exit_timestamp ของครั้งแรกต้องไม่ถูกทับ
	now := time.Now()
	var affected int64
	err = database.WithRetry(func() error {
		res := database.DB.Model(&models.LeaveRequest{}).
			Where("id = ? AND exit_status = ?", row.ID, false).
			Updates(map[string]any{"exit_status": true, "exit_timestamp": &now})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return storageError(c, err)
	}
	if affected == 0 {
		return c.JSON(http.StatusConflict, map[string]any{"error": "ALREADY_EXITED"})
	}

	if err := database.DB.First(row, "id = ?", row.ID).Error; err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

// POST /security-dashboard/unexit — ยกเลิกการบันทึกออก (ใช้แก้กรณีกดผิดคน)
// idempotent: แถวที่ยังไม่ถูก mark ก็ตอบสำเร็จเฉย ๆ และ mark ใหม่ได้ในวันเดิม
func (h *SecurityDashboardHandler) UnmarkExit(c echo.Context) error {
	var req exitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	erp := strings.TrimSpace(req.ErpStaffID)
	if erp == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	row, err := findCoveringToday(erp)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return storageError(c, err)
	}

	err = database.WithRetry(func() error {
		return database.DB.Model(&models.LeaveRequest{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{"exit_status": false, "exit_timestamp": nil}).Error
	})
	if err != nil {
		return storageError(c, err)
	}

	if err := database.DB.First(row, "id = ?", row.ID).Error; err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, row)
}
