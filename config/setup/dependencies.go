package setup

import (
	"log/slog"
	"noteboard/app"
	"noteboard/config"
	"noteboard/database"
	"noteboard/session"
)

// InitDatabase initializes the SQLite database and runs migrations
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath)
	return db, nil
}

// InitApp initializes the application with all dependencies
func InitApp(db *database.DB, logger *slog.Logger) (*app.App, error) {
	repo := database.NewRepository(db)

	sessionStore := session.NewStore(db.DB)
	sessionStore.StartCleanupRoutine()
	logger.Info("session cleanup routine started")

	application := app.New(repo, sessionStore, logger)

	// Bootstrap the superadmin account from the environment, if configured
	if err := application.AdminService.EnsureSuperadmin(config.AppConfig.AdminUser, config.AppConfig.AdminPass); err != nil {
		return nil, err
	}
	if config.AppConfig.AdminUser != "" {
		logger.Info("superadmin account ensured", "username", config.AppConfig.AdminUser)
	}

	return application, nil
}
