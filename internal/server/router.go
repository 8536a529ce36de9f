package server

import (
	"github.com/Anvoria/sessionly/internal/domain/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes sets up the routes for the application
func SetupRoutes(app *fiber.App, authHandler *auth.Handler) {
	api := app.Group("/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/challenge", authHandler.Challenge)
	authGroup.Post("/login", authHandler.Login)

	sessionGroup := api.Group("/sessions")
	sessionGroup.Get("/:id/validity", authHandler.Validity)
	sessionGroup.Get("/:id/refresh-logs", authHandler.RefreshLogs)
	sessionGroup.Post("/:id/refresh", authHandler.Refresh)
	sessionGroup.Post("/:id/revoke", authHandler.Revoke)

	userGroup := api.Group("/users")
	userGroup.Post("/:id/revoke-sessions", authHandler.RevokeAll)
}
