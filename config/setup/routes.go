package setup

import (
	"fmt"
	"noteboard/app"
	"noteboard/handlers"
	"noteboard/middleware"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {

	// Public routes
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	fiberApp.Get("/api/notes/preview", handlers.GetPreview(application))

	// Auth routes
	fiberApp.Post("/api/auth/register", handlers.Register(application))
	fiberApp.Post("/api/auth/login", handlers.Login(application))
	fiberApp.Post("/api/auth/logout", handlers.Logout(application))

	// Protected API routes
	api := fiberApp.Group("/api",
		middleware.AuthRequired(application.SessionStore, application.Repo),
		limiter.New(limiter.Config{
			Max:        100,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				if userID := middleware.GetUserID(c); userID != 0 {
					return fmt.Sprintf("user:%d", userID)
				}
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded for your account",
				})
			},
		}))

	api.Get("/auth/me", handlers.Me(application))
	api.Put("/profile", handlers.UpdateProfile(application))

	api.Get("/notes", handlers.GetFeed(application))
	api.Post("/notes", handlers.CreateNote(application))
	api.Post("/notes/:id/replies", handlers.CreateReply(application))
	api.Post("/notes/:id/reactions", handlers.ToggleReaction(application))

	// Admin routes
	admin := api.Group("/admin", middleware.AdminRequired())
	admin.Get("/users", handlers.ListUsers(application))
	admin.Post("/users/:id/promote", handlers.PromoteUser(application))
	admin.Post("/users/:id/demote", handlers.DemoteUser(application))
	admin.Delete("/users/:id", handlers.DeleteUser(application))
}
