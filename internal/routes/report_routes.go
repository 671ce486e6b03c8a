package routes

import (
	"marketing-fee-backend/internal/handler"
	"marketing-fee-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewReportHandler(svc.Reports, svc.Periods)

	api := app.Group("/api/report", middleware.Auth(svc.JWTSecret))
	api.Post("/create", hdl.CreateReport)
	api.Delete("/delete/:report_id", middleware.AdminOnly(), hdl.DeleteReport)
	api.Get("/user/:user_id", middleware.SelfOrAdmin("user_id"), hdl.GetUserReports)
}
