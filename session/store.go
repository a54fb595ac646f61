package session

import (
	"database/sql"
	"noteboard/models"
	"time"

	"github.com/google/uuid"
)

const sessionTTL = 30 * 24 * time.Hour

// Store persists sessions in the sessions table so logins survive restarts.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(userID int64) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		ExpiresAt:  now.Add(sessionTTL),
		CreatedAt:  now,
		LastUsedAt: now,
	}

	_, err := s.db.Exec(`
		INSERT INTO sessions (id, user_id, created_at, expires_at, last_used_at)
		VALUES (?, ?, ?, ?, ?)
	`, session.ID, session.UserID, session.CreatedAt, session.ExpiresAt, session.LastUsedAt)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Get returns nil for unknown or expired sessions.
func (s *Store) Get(sessionID string) (*models.Session, error) {
	var session models.Session
	err := s.db.QueryRow(`
		SELECT id, user_id, created_at, expires_at, last_used_at
		FROM sessions WHERE id = ?
	`, sessionID).Scan(
		&session.ID, &session.UserID, &session.CreatedAt,
		&session.ExpiresAt, &session.LastUsedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, nil
	}

	return &session, nil
}

func (s *Store) Touch(sessionID string) error {
	_, err := s.db.Exec("UPDATE sessions SET last_used_at = ? WHERE id = ?", time.Now(), sessionID)
	return err
}

func (s *Store) Delete(sessionID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	return err
}

// DeleteByUserID drops every session of a user, e.g. when an admin deletes
// the account.
func (s *Store) DeleteByUserID(userID int64) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE user_id = ?", userID)
	return err
}

func (s *Store) CleanupExpired() error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	return err
}

func (s *Store) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			s.CleanupExpired()
		}
	}()
}
