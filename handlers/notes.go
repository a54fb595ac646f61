package handlers

import (
	"errors"
	"noteboard/app"
	"noteboard/middleware"
	"noteboard/models"
	"noteboard/services"

	"github.com/gofiber/fiber/v2"
)

// GetFeed returns the full feed for the authenticated viewer: top-level
// notes newest first, replies oldest first, reaction groups with the
// viewer's own reactions flagged.
func GetFeed(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		feed, err := a.NoteService.Feed(middleware.GetUserID(c))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{
			"notes":  feed,
			"emojis": models.PresetEmojis,
		})
	}
}

// GetPreview returns the latest top-level notes without authentication.
func GetPreview(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 5)

		notes, err := a.NoteService.Preview(limit)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

// CreateNote posts a top-level note.
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		note, err := a.NoteService.Create(middleware.GetUserID(c), req.Content)
		if err != nil {
			if errors.Is(err, services.ErrContentLength) {
				return badRequest(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to post note", err)
		}

		return created(c, fiber.Map{"note": note})
	}
}

// CreateReply posts a reply to the note in the path.
func CreateReply(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID, err := c.ParamsInt("id")
		if err != nil || noteID < 1 {
			return badRequest(c, "Invalid note id")
		}

		var req models.CreateReplyRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		note, err := a.NoteService.Reply(middleware.GetUserID(c), int64(noteID), req.Content)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoteNotFound):
				return notFound(c, err.Error())
			case errors.Is(err, services.ErrNestedReply), errors.Is(err, services.ErrContentLength):
				return badRequest(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to post reply", err)
		}

		return created(c, fiber.Map{"note": note})
	}
}

// ToggleReaction adds or removes the viewer's emoji reaction on the note in
// the path. The client is expected to re-fetch the feed for display state
// rather than trusting the returned action.
func ToggleReaction(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		noteID, err := c.ParamsInt("id")
		if err != nil || noteID < 1 {
			return badRequest(c, "Invalid note id")
		}

		var req models.ReactRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		action, err := a.NoteService.React(int64(noteID), middleware.GetUserID(c), req.Emoji)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoteNotFound):
				return notFound(c, err.Error())
			case errors.Is(err, services.ErrEmojiLength):
				return badRequest(c, err.Error())
			}
			return serverErrorWithDetails(c, "Failed to toggle reaction", err)
		}

		return success(c, fiber.Map{"action": action})
	}
}
