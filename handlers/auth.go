package handlers

import (
	"errors"
	"noteboard/app"
	"noteboard/config"
	"noteboard/middleware"
	"noteboard/models"
	"noteboard/services"

	"github.com/gofiber/fiber/v2"
)

// Register creates a new account.
func Register(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		user, err := a.AuthService.Register(req.Username, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrUsernameTaken) {
				return conflict(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to register", err)
		}

		return created(c, fiber.Map{"user": user})
	}
}

// Login verifies credentials and sets the session cookie.
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		user, sess, err := a.AuthService.Login(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return unauthorized(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to log in", err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     "session_id",
			Value:    sess.ID,
			Expires:  sess.ExpiresAt,
			HTTPOnly: true,
			Secure:   config.AppConfig.Env == "production",
			SameSite: "Lax",
			Path:     "/",
		})

		return success(c, fiber.Map{"user": user})
	}
}

// Logout drops the session.
func Logout(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session_id")
		if sessionID != "" {
			a.AuthService.Logout(sessionID)
		}

		c.ClearCookie("session_id")

		return success(c, fiber.Map{"success": true})
	}
}

// Me returns the authenticated user.
func Me(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.Repo.GetUserByID(middleware.GetUserID(c))
		if err != nil || user == nil {
			return unauthorized(c, "Authentication required")
		}

		return success(c, fiber.Map{"user": user})
	}
}

// UpdateProfile changes the username and optionally the password.
func UpdateProfile(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		user, err := a.AuthService.UpdateProfile(middleware.GetUserID(c), req.Username, req.NewPassword)
		if err != nil {
			if errors.Is(err, services.ErrUsernameTaken) {
				return conflict(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to update profile", err)
		}

		return success(c, fiber.Map{"user": user})
	}
}
