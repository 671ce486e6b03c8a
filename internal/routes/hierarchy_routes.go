package routes

import (
	"marketing-fee-backend/internal/handler"
	"marketing-fee-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupHierarchyRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewHierarchyHandler(svc.Hierarchy)

	guard := []fiber.Handler{middleware.Auth(svc.JWTSecret), middleware.AdminOnly()}

	// /api/admin dipakai bersama dashboard, jadi guard dipasang per route
	api := app.Group("/api/admin")
	api.Get("/children/:admin_id", append(guard, hdl.GetChildren)...)
	api.Get("/cluster-user/:cluster_id", append(guard, hdl.GetClusterUser)...)
	api.Get("/branch/:branch_id/clusters/check-access/:cluster_id", append(guard, hdl.CheckClusterAccess)...)
}
