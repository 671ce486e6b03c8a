package routes

import (
	"marketing-fee-backend/internal/handler"
	"marketing-fee-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupApprovalRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewApprovalHandler(svc.Approval)

	app.Post("/api/approve", middleware.Auth(svc.JWTSecret), middleware.AdminOnly(), hdl.Approve)
}
