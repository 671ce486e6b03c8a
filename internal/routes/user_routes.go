package routes

import (
	"marketing-fee-backend/internal/handler"
	"marketing-fee-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewUserHandler(svc.Users)

	api := app.Group("/api/users", middleware.Auth(svc.JWTSecret))
	api.Post("/", middleware.AdminOnly(), hdl.Register)
	api.Get("/:id", middleware.SelfOrAdmin("id"), hdl.Profile)
}
