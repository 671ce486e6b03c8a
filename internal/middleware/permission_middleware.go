package middleware

import (
	"strconv"

	"marketing-fee-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

// SelfOrAdmin meloloskan admin; user biasa hanya boleh mengakses :param
// yang sama dengan user id miliknya sendiri.
func SelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if model.IsAdminRole(RoleID(c)) {
			return c.Next()
		}
		id, err := strconv.ParseUint(c.Params(param), 10, 64)
		if err == nil && uint(id) == UserID(c) && UserID(c) != 0 {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: hanya data milik sendiri"})
	}
}
