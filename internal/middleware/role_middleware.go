package middleware

import (
	"marketing-fee-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func Role(allowedRoles ...uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole := RoleID(c)
		if userRole == 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Role tidak valid"})
		}

		for _, role := range allowedRoles {
			if role == userRole {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: role tidak diizinkan"})
	}
}

// AdminOnly mengizinkan semua role admin di level mana pun.
func AdminOnly() fiber.Handler {
	return Role(
		model.RoleAreaAdmin,
		model.RoleRegionAdmin,
		model.RoleBranchAdmin,
		model.RoleClusterAdmin,
		model.RoleClusterAdmin2,
	)
}
