package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sanskardagade/CampusConnectMain-sub001/database"
	"github.com/sanskardagade/CampusConnectMain-sub001/models"
)

// เปิด sqlite ใน memory แล้วสลับ database.DB ให้ handler ใช้
// จำกัด pool ไว้ 1 connection — ไม่งั้นแต่ละ connection ได้ :memory: คนละก้อน
func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func seedStaff(t *testing.T, erp, first, last, dept string) models.Staff {
	t.Helper()
	st := models.Staff{
		ErpStaffID: erp,
		FirstName:  first,
		LastName:   last,
		Department: dept,
		Position:   "Lecturer",
	}
	require.NoError(t, database.DB.Create(&st).Error)
	return st
}

func seedLeave(t *testing.T, erp, dateFrom, dateTo string) models.LeaveRequest {
	t.Helper()
	row := models.LeaveRequest{
		ErpStaffID:        erp,
		Kind:              models.KindLeave,
		DateFrom:          dateFrom,
		DateTo:            dateTo,
		Reason:            "personal work",
		HodApproval:       models.StatusPending,
		PrincipalApproval: models.StatusPending,
		FinalStatus:       models.StatusPending,
	}
	require.NoError(t, database.DB.Create(&row).Error)
	return row
}

func seedShortLeave(t *testing.T, erp, date, startTime, endTime string) models.LeaveRequest {
	t.Helper()
	row := models.LeaveRequest{
		ErpStaffID:        erp,
		Kind:              models.KindShortLeave,
		LeaveDate:         date,
		StartTime:         startTime,
		EndTime:           endTime,
		Reason:            "bank visit",
		HodApproval:       models.StatusPending,
		PrincipalApproval: models.StatusPending,
		FinalStatus:       models.StatusPending,
	}
	require.NoError(t, database.DB.Create(&row).Error)
	return row
}

// สร้าง echo.Context พร้อม claims แบบเดียวกับที่ RequireAuth แนบให้
func newTestContext(t *testing.T, e *echo.Echo, method, target string, body any, role, dept, erp string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(1))
	c.Set("role", role)
	c.Set("name", "Test User")
	c.Set("department", dept)
	c.Set("erp_staff_id", erp)
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func reloadRequest(t *testing.T, id uint) models.LeaveRequest {
	t.Helper()
	var row models.LeaveRequest
	require.NoError(t, database.DB.First(&row, "id = ?", id).Error)
	return row
}
