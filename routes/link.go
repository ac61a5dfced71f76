package routes

import (
	handlers "vcard.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes paylaşılan kartların herkese açık sayfaları.
func registerPublicLinkRoutes(app *fiber.App, deps Dependencies) {
	publicHandler := handlers.NewLinkHandler(deps.Catalog, deps.Shares, deps.QRCode, deps.Metrics, deps.LinkOrigin)

	app.Get("/share/visiting-card/:token", publicHandler.ShowSharedToken)
	app.Get("/share/visiting-card/:token/qr.png", publicHandler.ShowSharedTokenQR)
	app.Get("/card/:shareId", publicHandler.ShowShare)
	app.Get("/card/:shareId/qr.png", publicHandler.ShowShareQR)
}

// registerShareAPIRoutes /api/share/visiting-card JSON uç noktaları. Tek paylaşımı okumak
// için oturum gerekmez; gizli paylaşımlar sadece oluşturana görünür.
func registerShareAPIRoutes(app *fiber.App, deps Dependencies, guards authGuards) {
	apiHandler := handlers.NewShareAPIHandler(deps.Shares)

	api := app.Group("/api/share/visiting-card")
	api.Post("/create", guards.required, apiHandler.CreateShare)
	api.Get("/user/shares", guards.required, apiHandler.GetUserShares)
	api.Get("/:shareId/analytics", guards.required, apiHandler.GetShareAnalytics)
	api.Get("/:shareId", guards.optional, apiHandler.GetShare)
	api.Patch("/:shareId", guards.required, apiHandler.UpdateShare)
	api.Delete("/:shareId", guards.required, apiHandler.DeleteShare)
}
