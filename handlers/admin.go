package handlers

import (
	"errors"
	"noteboard/app"
	"noteboard/middleware"
	"noteboard/services"

	"github.com/gofiber/fiber/v2"
)

// ListUsers returns every account for the admin dashboard.
func ListUsers(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := a.AdminService.ListUsers()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to list users", err)
		}

		return success(c, fiber.Map{"users": users})
	}
}

// PromoteUser grants admin rights. Superadmin only.
func PromoteUser(a *app.App) fiber.Handler {
	return adminAction(a, a.AdminService.Promote, "User promoted")
}

// DemoteUser revokes admin rights. Superadmin only.
func DemoteUser(a *app.App) fiber.Handler {
	return adminAction(a, a.AdminService.Demote, "User demoted")
}

// DeleteUser removes an account and everything it owns. Superadmin only.
func DeleteUser(a *app.App) fiber.Handler {
	return adminAction(a, a.AdminService.DeleteUser, "User deleted")
}

func adminAction(a *app.App, action func(actorID, targetID int64) error, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := c.ParamsInt("id")
		if err != nil || targetID < 1 {
			return badRequest(c, "Invalid user id")
		}

		err = action(middleware.GetUserID(c), int64(targetID))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrSuperadminOnly):
				return forbidden(c, err.Error())
			case errors.Is(err, services.ErrSuperadminTarget):
				return forbidden(c, err.Error())
			case errors.Is(err, services.ErrUserNotFound):
				return notFound(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to update user", err)
		}

		return success(c, fiber.Map{"message": message})
	}
}
