package routes

import (
	"vcard.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// authGuards oturum açma kontrolleri; token'lar dışarıda üretilir, burada sadece doğrulanır.
type authGuards struct {
	required fiber.Handler
	optional fiber.Handler
	admin    fiber.Handler
}

func newAuthGuards(deps Dependencies) authGuards {
	return authGuards{
		required: middlewares.AuthMiddleware(deps.Auth),
		optional: middlewares.OptionalAuth(deps.Auth),
		admin:    middlewares.RequireAdmin(deps.AdminUserID),
	}
}
