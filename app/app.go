package app

import (
	"log/slog"
	"noteboard/database"
	"noteboard/services"
	"noteboard/session"
	"noteboard/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo         *database.Repository
	SessionStore *session.Store
	AuthService  *services.AuthService
	NoteService  *services.NoteService
	AdminService *services.AdminService
	Validator    *validator.Validator
	Logger       *slog.Logger
}

// New creates a new App instance with all dependencies
func New(repo *database.Repository, sessionStore *session.Store, logger *slog.Logger) *App {
	return &App{
		Repo:         repo,
		SessionStore: sessionStore,
		AuthService:  services.NewAuthService(repo, sessionStore),
		NoteService:  services.NewNoteService(repo),
		AdminService: services.NewAdminService(repo, sessionStore),
		Validator:    validator.New(),
		Logger:       logger,
	}
}
