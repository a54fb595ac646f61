package services

import "noteboard/models"

// NoteRepository is the persistence surface NoteService needs. Satisfied by
// *database.Repository; mocked in tests.
type NoteRepository interface {
	CreateNote(authorID int64, parentID *int64, content string) (int64, error)
	GetNoteByID(noteID int64) (*models.Note, error)
	ListTopLevelNotes() ([]models.FeedNote, error)
	ListReplies() ([]models.ReplyView, error)
	ListRecentNotes(limit int) ([]models.NotePreview, error)
	ToggleReaction(noteID, userID int64, emoji string) (string, error)
	ListReactionSummaries(viewerID int64) (map[int64][]models.ReactionSummary, error)
}

// UserRepository is the persistence surface AuthService and AdminService
// need. Satisfied by *database.Repository.
type UserRepository interface {
	CreateUser(username, email, passwordHash string, isAdmin int) (int64, error)
	GetUserByID(userID int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByUsernameOrEmail(username, email string) (*models.User, error)
	ListUsers() ([]models.User, error)
	UpdateUsername(userID int64, username string) error
	UpdatePassword(userID int64, passwordHash string) error
	SetAdminLevel(userID int64, level int) error
	DeleteUser(userID int64) error
}

// SessionStore is the session surface AuthService needs. Satisfied by
// *session.Store.
type SessionStore interface {
	Create(userID int64) (*models.Session, error)
	Get(sessionID string) (*models.Session, error)
	Touch(sessionID string) error
	Delete(sessionID string) error
	DeleteByUserID(userID int64) error
}
