package routes

import (
	panel_handlers "vcard.link/handlers/panel"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes oturum açmış üyenin şablon seçimi, önizleme ve token paylaşımı.
func registerPanelRoutes(app *fiber.App, deps Dependencies, guards authGuards) {
	cardHandler := panel_handlers.NewPanelCardHandler(deps.Assignments, deps.CardData, deps.Catalog, deps.Metrics, deps.LinkOrigin)

	panelGroup := app.Group("/api/visiting-card", guards.required)

	panelGroup.Get("/templates", cardHandler.ListTemplates)
	panelGroup.Put("/templates/selection", cardHandler.SaveSelection)
	panelGroup.Put("/templates/default", cardHandler.SetDefault)
	panelGroup.Post("/preview", cardHandler.Preview)
	panelGroup.Post("/share/token", cardHandler.ShareToken)
}
