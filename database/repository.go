package database

import (
	"database/sql"
	"noteboard/models"
)

type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// ==================== USERS ====================

func (r *Repository) CreateUser(username, email, passwordHash string, isAdmin int) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO users (username, email, password_hash, is_admin)
		VALUES (?, ?, ?, ?)
	`, username, email, passwordHash, isAdmin)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repository) GetUserByID(userID int64) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(`
		SELECT id, username, email, password_hash, is_admin, created_at
		FROM users WHERE id = ?
	`, userID))
}

func (r *Repository) GetUserByUsername(username string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(`
		SELECT id, username, email, password_hash, is_admin, created_at
		FROM users WHERE username = ?
	`, username))
}

// GetUserByUsernameOrEmail backs the registration uniqueness check.
func (r *Repository) GetUserByUsernameOrEmail(username, email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(`
		SELECT id, username, email, password_hash, is_admin, created_at
		FROM users WHERE username = ? OR email = ?
	`, username, email))
}

func (r *Repository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.IsAdmin, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) ListUsers() ([]models.User, error) {
	rows, err := r.db.Query(`
		SELECT id, username, email, is_admin, created_at
		FROM users
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *Repository) UpdateUsername(userID int64, username string) error {
	_, err := r.db.Exec("UPDATE users SET username = ? WHERE id = ?", username, userID)
	return err
}

func (r *Repository) UpdatePassword(userID int64, passwordHash string) error {
	_, err := r.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, userID)
	return err
}

func (r *Repository) SetAdminLevel(userID int64, level int) error {
	_, err := r.db.Exec("UPDATE users SET is_admin = ? WHERE id = ?", level, userID)
	return err
}

func (r *Repository) DeleteUser(userID int64) error {
	_, err := r.db.Exec("DELETE FROM users WHERE id = ?", userID)
	return err
}
