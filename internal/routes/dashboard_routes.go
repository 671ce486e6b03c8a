package routes

import (
	"marketing-fee-backend/internal/handler"
	"marketing-fee-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewDashboardHandler(svc.Hierarchy, svc.Users, svc.Usage, svc.Reports, svc.Periods)
	auth := middleware.Auth(svc.JWTSecret)

	app.Get("/api/user-dashboard/:user_id", auth, middleware.SelfOrAdmin("user_id"), hdl.GetUserDashboard)

	adminOnly := middleware.AdminOnly()
	admin := app.Group("/api/admin")
	admin.Get("/cluster/:cluster_id/dashboard", auth, adminOnly, hdl.GetClusterDashboard)
	admin.Get("/branches/:branch_id/dashboard", auth, adminOnly, hdl.GetBranchDashboard)
	admin.Get("/regions/:region_id/dashboard", auth, adminOnly, hdl.GetRegionDashboard)
	admin.Get("/area/:area_id/dashboard", auth, adminOnly, hdl.GetAreaDashboard)
}
