package routes

import (
	"marketing-fee-backend/internal/handler"

	"github.com/gofiber/fiber/v2"
)

// SetupMasterDataRoutes membuka data referensi publik.
func SetupMasterDataRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewMasterDataHandler(svc.Poins, svc.Hierarchy, svc.Users)

	app.Get("/api/poin-types", hdl.GetPoinTypes)
	app.Get("/api/roles", hdl.GetRoles)

	loc := app.Group("/api/locations")
	loc.Get("/areas", hdl.GetAreas)
	loc.Get("/regions/:area_id", hdl.GetRegions)
	loc.Get("/branches/:region_id", hdl.GetBranches)
	loc.Get("/clusters/:branch_id", hdl.GetClusters)
}
