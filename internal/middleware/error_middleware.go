package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler merender error yang lolos dari handler (umumnya 404 dan 405
// bawaan fiber) dengan bentuk {"error": msg} yang sama.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Terjadi kesalahan pada server"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
