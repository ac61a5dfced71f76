package routes

import (
	handlers "vcard.link/handlers/dashboard"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes sadece yönetici kullanıcının erişebildiği atama yönetimi.
func registerDashboardRoutes(app *fiber.App, deps Dependencies, guards authGuards) {
	cardHandler := handlers.NewCardHandler(deps.Assignments)

	dashboardGroup := app.Group("/api/admin/visiting-card", guards.required, guards.admin)

	dashboardGroup.Post("/assignments/reset", cardHandler.ResetAssignments)
	dashboardGroup.Get("/assignments/:userId", cardHandler.GetAssignment)
	dashboardGroup.Put("/assignments/:userId", cardHandler.AssignTemplates)
}
