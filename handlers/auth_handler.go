package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sanskardagade/CampusConnectMain-sub001/database"
	"github.com/sanskardagade/CampusConnectMain-sub001/models"
)

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler() *AuthHandler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret" // กันล่มในเครื่อง dev (โปรดตั้งใน .env จริง)
	}
	return &AuthHandler{JWTSecret: secret}
}

func (h *AuthHandler) signJWT(u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":          u.ID,
		"role":         u.Role,
		"name":         u.Name,
		"department":   u.Department,
		"erp_staff_id": u.ErpStaffID,
		"exp":          time.Now().Add(ttl).Unix(),
		"iat":          time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

type StaffLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /auth/staff/login — ใช้ร่วมกันทุกบทบาท (staff/hod/principal/security/admin)
func (h *AuthHandler) StaffLogin(c echo.Context) error {
	var req StaffLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	username := strings.TrimSpace(req.Username)
	pass := strings.TrimSpace(req.Password)
	if username == "" || pass == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var u models.User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
		}
		return storageError(c, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(pass)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	tok, err := h.signJWT(&u, 12*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_SIGN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"token": tok,
		"user": map[string]any{
			"id":           u.ID,
			"username":     u.Username,
			"name":         u.Name,
			"role":         u.Role,
			"department":   u.Department,
			"erp_staff_id": u.ErpStaffID,
		},
	})
}
