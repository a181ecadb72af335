package routes

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/sanskardagade/CampusConnectMain-sub001/handlers"
	"github.com/sanskardagade/CampusConnectMain-sub001/middlewares"
)

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(e *echo.Echo) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler()
	lv := handlers.NewLeaveRequestHandler()
	sec := handlers.NewSecurityDashboardHandler()

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/staff/login", auth.StaffLogin)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}
	authMW := middlewares.RequireAuth(secret)

	// ===== ยื่นคำขอลา (บุคลากรทุกคนที่ล็อกอิน) =====
	e.POST("/leave-requests", lv.Create, authMW,
		middlewares.RequireRole("staff", "hod", "principal", "admin"))

	// ===== ฝั่งผู้อนุมัติ (HOD / Principal) =====
	approver := e.Group("/leave-requests", authMW, middlewares.RequireRole("hod", "principal"))
	approver.GET("", lv.List)
	approver.GET("/pending-count", lv.PendingCount)
	approver.PUT("/:id", lv.Decide)

	// ===== โต๊ะ รปภ. =====
	dash := e.Group("/security-dashboard", authMW, middlewares.RequireRole("security", "admin"))
	dash.GET("", sec.List)
	dash.POST("/exit", sec.MarkExit)
	dash.POST("/unexit", sec.UnmarkExit)

	// ===== ฟีดแจ้งเตือนของเจ้าของ token =====
	e.GET("/notifications", lv.Notifications, authMW)
}
