package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// แปลง string -> int; ถ้าแปลงไม่ได้ให้คืนค่าเริ่มต้น
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// YYYY-MM-DD
func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// HH:MM
func isClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ตอบ error ฝั่ง storage (ผ่าน retry ใน database.WithRetry มาแล้ว) เป็น 500
func storageError(c echo.Context, err error) error {
	log.Printf("[storage] %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORAGE_ERROR"})
}
