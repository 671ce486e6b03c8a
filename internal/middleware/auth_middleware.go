package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Key c.Locals yang diisi Auth.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// Auth memvalidasi bearer token HS256 dari layanan identitas lalu menyimpan
// user_id dan role (uint) ke c.Locals.
func Auth(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak ditemukan"})
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid atau kadaluwarsa"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid"})
		}
		userID, okUser := claims["user_id"].(float64)
		role, okRole := claims["role"].(float64)
		if !okUser || !okRole || userID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak memuat user_id dan role"})
		}
		c.Locals(LocalUserID, uint(userID))
		c.Locals(LocalRole, uint(role))

		return c.Next()
	}
}

// UserID mengembalikan id user yang login, 0 jika Auth belum berjalan.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}

// RoleID mengembalikan role user yang login, 0 jika Auth belum berjalan.
func RoleID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalRole).(uint)
	return id
}
