package middleware

import (
	"noteboard/models"
	"noteboard/services"
	"noteboard/session"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired resolves the session cookie into the current user. The user
// row is loaded on every request so admin changes take effect immediately.
func AuthRequired(sessions *session.Store, users services.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies("session_id")
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		sess, err := sessions.Get(sessionID)
		if err != nil {
			return fiber.ErrInternalServerError
		}
		if sess == nil {
			c.ClearCookie("session_id")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		user, err := users.GetUserByID(sess.UserID)
		if err != nil {
			return fiber.ErrInternalServerError
		}
		if user == nil {
			// Account deleted while the session was live
			sessions.Delete(sessionID)
			c.ClearCookie("session_id")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		sessions.Touch(sessionID)

		c.Locals("session", sess)
		c.Locals("userID", user.ID)
		c.Locals("username", user.Username)
		c.Locals("isAdmin", user.IsAdmin)
		return c.Next()
	}
}

// AdminRequired gates the admin surface. Must run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		level, ok := c.Locals("isAdmin").(int)
		if !ok || (level != models.RoleAdmin && level != models.RoleSuperadmin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You do not have permission to access that page",
			})
		}
		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) int64 {
	userID, ok := c.Locals("userID").(int64)
	if !ok {
		return 0
	}
	return userID
}

func GetUsername(c *fiber.Ctx) string {
	username, ok := c.Locals("username").(string)
	if !ok {
		return ""
	}
	return username
}
