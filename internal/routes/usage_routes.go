package routes

import (
	"marketing-fee-backend/internal/handler"
	"marketing-fee-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUsageRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewUsageHandler(svc.Usage, svc.Quota, svc.Periods)
	auth := middleware.Auth(svc.JWTSecret)

	usage := app.Group("/api/usage", auth, middleware.AdminOnly())
	usage.Get("/:level/:id", hdl.GetUsage)
	usage.Get("/:level/:id/sparse", hdl.GetUsageSparse)
	usage.Get("/:level/:id/tree", hdl.GetUsageTree)

	app.Get("/api/user-evidence/:user_id/:poin_id", auth, middleware.SelfOrAdmin("user_id"), hdl.GetUserEvidence)
	app.Get("/api/marketing-fee/monthly/:user_id", auth, middleware.SelfOrAdmin("user_id"), hdl.GetDailyUsage)
	app.Get("/api/marketing-fee/:user_id", auth, middleware.SelfOrAdmin("user_id"), hdl.GetMonthUsage)
}
