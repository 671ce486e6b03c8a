package routes

import (
	"marketing-fee-backend/internal/handler"
	"marketing-fee-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupQuotaRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewQuotaHandler(svc.Quota, svc.Periods)
	auth := middleware.Auth(svc.JWTSecret)
	admin := middleware.AdminOnly()

	app.Post("/api/marketing-fee/submit", auth, admin, hdl.SubmitMarketingFee)
	app.Put("/api/marketing-fee/submit", auth, admin, hdl.SubmitMarketingFee)
	app.Get("/api/marketing-fee/history/:user_id", auth, middleware.SelfOrAdmin("user_id"), hdl.GetMarketingFeeHistory)

	rec := app.Group("/api/recommendations", auth)
	rec.Post("/create", admin, hdl.CreateRecommendation)
	rec.Post("/user/:user_id", admin, hdl.ReplaceRecommendations)
	rec.Get("/:cluster_id/:poin_id", admin, hdl.GetRecommendation)
}
