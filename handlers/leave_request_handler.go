package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sanskardagade/CampusConnectMain-sub001/database"
	"github.com/sanskardagade/CampusConnectMain-sub001/models"
)

type LeaveRequestHandler struct{}

func NewLeaveRequestHandler() *LeaveRequestHandler { return &LeaveRequestHandler{} }

// คำตัดสินของ HOD ใช้ได้เฉพาะกับบุคลากรในภาควิชาตัวเอง
var errWrongDepartment = errors.New("wrong department")

type createLeaveReq struct {
	ErpStaffID string `json:"erp_staff_id"` // ถ้าเว้นว่าง ใช้ของเจ้าของ token
	Kind       string `json:"kind"`         // short_leave | leave
	LeaveDate  string `json:"leave_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Reason     string `json:"reason"`
}

// POST /leave-requests — ยื่นคำขอลา
func (h *LeaveRequestHandler) Create(c echo.Context) error {
	var req createLeaveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	erp := strings.TrimSpace(req.ErpStaffID)
	if erp == "" {
		erp, _ = c.Get("erp_staff_id").(string)
	}
	reason := strings.TrimSpace(req.Reason)
	if erp == "" || reason == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	// ต้องอ้างบุคลากรที่มีจริงในทำเนียบ — store ห้ามมีแถว placeholder เด็ดขาด
	var st models.Staff
	if err := database.DB.Where("erp_staff_id = ?", erp).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "STAFF_NOT_FOUND"})
		}
		return storageError(c, err)
	}

	row := models.LeaveRequest{
		ErpStaffID:        erp,
		Reason:            reason,
		HodApproval:       models.StatusPending,
		PrincipalApproval: models.StatusPending,
		FinalStatus:       models.StatusPending,
	}

	switch strings.TrimSpace(req.Kind) {
	case models.KindShortLeave:
		if !isDate(req.LeaveDate) || !isClock(req.StartTime) || !isClock(req.EndTime) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
		}
		if req.EndTime <= req.StartTime {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_TIME_RANGE"})
		}
		row.Kind = models.KindShortLeave
		row.LeaveDate, row.StartTime, row.EndTime = req.LeaveDate, req.StartTime, req.EndTime
	case models.KindLeave:
		if !isDate(req.DateFrom) || !isDate(req.DateTo) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
		}
		if req.DateTo < req.DateFrom {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE_RANGE"})
		}
		row.Kind = models.KindLeave
		row.DateFrom, row.DateTo = req.DateFrom, req.DateTo
	default:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_KIND"})
	}

	if err := database.WithRetry(func() error {
		return database.DB.Create(&row).Error
	}); err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

// GET /leave-requests?status=&staffId=&from=&to=&page=&size=
// กล่องงานของผู้อนุมัติ — status กรองในมุมของผู้เรียก (ฟิลด์ของตัวเอง ไม่ใช่ final)
// HOD เห็นเฉพาะภาควิชาตัวเอง
func (h *LeaveRequestHandler) List(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	staffID := strings.TrimSpace(c.QueryParam("staffId"))
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))

	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 20)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	role, _ := c.Get("role").(string)

	tx := database.DB.Model(&models.LeaveRequest{})
	if role == models.RoleHOD {
		dept, _ := c.Get("department").(string)
		tx = tx.Joins("JOIN staffs ON staffs.erp_staff_id = leave_requests.erp_staff_id").
			Where("staffs.department = ?", dept)
	}
	if status != "" {
		switch role {
		case models.RoleHOD:
			tx = tx.Where("hod_approval = ?", status)
		case models.RolePrincipal:
			tx = tx.Where("principal_approval = ?", status)
		default:
			tx = tx.Where("final_status = ?", status)
		}
	}
	if staffID != "" {
		tx = tx.Where("leave_requests.erp_staff_id = ?", staffID)
	}
	if from != "" && to != "" {
		// ทับซ้อนช่วงวันที่ ครอบคลุมทั้งสองชนิดคำขอ
		tx = tx.Where(
			"((kind = ? AND leave_date BETWEEN ? AND ?) OR (kind = ? AND date_from <= ? AND date_to >= ?))",
			models.KindShortLeave, from, to, models.KindLeave, to, from,
		)
	}

	var rows []models.LeaveRequest
	offset := (page - 1) * size
	if err := tx.Order("applied_on DESC, leave_requests.id DESC").Offset(offset).Limit(size).Find(&rows).Error; err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /leave-requests/pending-count — ตัวเลข badge บนกล่องงานผู้อนุมัติ
func (h *LeaveRequestHandler) PendingCount(c echo.Context) error {
	role, _ := c.Get("role").(string)

	tx := database.DB.Model(&models.LeaveRequest{})
	switch role {
	case models.RoleHOD:
		dept, _ := c.Get("department").(string)
		tx = tx.Joins("JOIN staffs ON staffs.erp_staff_id = leave_requests.erp_staff_id").
			Where("staffs.department = ?", dept).
			Where("hod_approval = ?", models.StatusPending)
	case models.RolePrincipal:
		tx = tx.Where("principal_approval = ?", models.StatusPending)
	default:
		tx = tx.Where("final_status = ?", models.StatusPending)
	}

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n})
}

type decideReq struct {
	Status string `json:"status"` // "approved" | "rejected"
}

// PUT /leave-requests/:id — บันทึกคำตัดสินของผู้เรียก (hod หรือ principal)
// แก้คำตัดสินเดิมของตัวเองได้เสมอ final_status คำนวณใหม่จากค่าล่าสุดทุกครั้ง
func (h *LeaveRequestHandler) Decide(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	// กันค่าที่ไม่ใช่ตัวเลขตั้งแต่ขอบ — ปล่อยลง query แล้ว Postgres จะ error เป็น 500
	if atoiOr(id, 0) <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}

	var body decideReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	decision := strings.ToLower(strings.TrimSpace(body.Status))
	// pending เป็นค่าเริ่มต้นของระบบเท่านั้น ไม่รับเป็นคำตัดสิน
	if decision != models.StatusApproved && decision != models.StatusRejected {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DECISION"})
	}

	role, _ := c.Get("role").(string)
	if role != models.RoleHOD && role != models.RolePrincipal {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	var row models.LeaveRequest
	err := database.WithRetry(func() error {
		return database.DB.Transaction(func(tx *gorm.DB) error {
			// อัปเดตฟิลด์ของบทบาทตัวเองก่อน — UPDATE ตัวนี้ล็อกแถวไว้
			// ให้คู่แข่ง (ผู้อนุมัติอีกฝ่าย) ที่เขียนพร้อมกันต้องรอจนเรา commit
			field := "hod_approval"
			if role == models.RolePrincipal {
				field = "principal_approval"
			}
			res := tx.Model(&models.LeaveRequest{}).Where("id = ?", id).Update(field, decision)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}

			// อ่านค่าล่าสุดใน transaction เดียวกัน แล้วคำนวณ final_status
			if err := tx.First(&row, "id = ?", id).Error; err != nil {
				return err
			}

			if role == models.RoleHOD {
				dept, _ := c.Get("department").(string)
				var st models.Staff
				if err := tx.Where("erp_staff_id = ?", row.ErpStaffID).First(&st).Error; err != nil {
					return err
				}
				if !strings.EqualFold(st.Department, dept) {
					return errWrongDepartment // rollback — ไม่มี state เปลี่ยน
				}
			}

			row.FinalStatus = models.ComputeFinalStatus(row.HodApproval, row.PrincipalApproval)
			return tx.Model(&models.LeaveRequest{}).Where("id = ?", row.ID).
				Update("final_status", row.FinalStatus).Error
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		if errors.Is(err, errWrongDepartment) {
			return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
		}
		return storageError(c, err)
	}

	// แจ้งผลแบบ fire-and-forget
	h.notify(&row, role, decision)

	return c.JSON(http.StatusOK, row)
}

// insert แถวแจ้งเตือนให้ FE — ถ้าพังแค่ log คำตัดสินสำเร็จไปแล้ว
func (h *LeaveRequestHandler) notify(row *models.LeaveRequest, role, decision string) {
	name := row.ErpStaffID
	var st models.Staff
	if err := database.DB.Where("erp_staff_id = ?", row.ErpStaffID).First(&st).Error; err == nil {
		name = st.DisplayName()
	}

	verb := "Approved"
	if decision == models.StatusRejected {
		verb = "Rejected"
	}
	kind := "leave"
	if row.Kind == models.KindShortLeave {
		kind = "short leave"
	}

	n := models.Notification{
		LeaveRequestID: row.ID,
		ErpStaffID:     row.ErpStaffID,
		ActorRole:      role,
		Decision:       decision,
		Message:        fmt.Sprintf("%s %s for %s", verb, kind, name),
	}
	if err := database.DB.Create(&n).Error; err != nil {
		log.Printf("[notify] insert failed: %v", err)
	}
}

// GET /notifications — ฟีดของเจ้าของ token (ล่าสุดก่อน)
func (h *LeaveRequestHandler) Notifications(c echo.Context) error {
	erp, _ := c.Get("erp_staff_id").(string)
	if erp == "" {
		return c.JSON(http.StatusOK, []models.Notification{})
	}
	var rows []models.Notification
	if err := database.DB.Where("erp_staff_id = ?", erp).
		Order("created_at DESC, id DESC").Limit(20).Find(&rows).Error; err != nil {
		return storageError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
