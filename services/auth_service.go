package services

import (
	"noteboard/models"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and profile updates.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
}

func NewAuthService(users UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Register creates a new account. Username and email must both be unused;
// the database UNIQUE constraints back this check up.
func (as *AuthService) Register(username, email, password string) (*models.User, error) {
	existing, err := as.users.GetUserByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID, err := as.users.CreateUser(username, email, string(hash), models.RoleUser)
	if err != nil {
		return nil, err
	}

	return as.users.GetUserByID(userID)
}

// Login verifies credentials and opens a session.
func (as *AuthService) Login(username, password string) (*models.User, *models.Session, error) {
	user, err := as.users.GetUserByUsername(username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := as.sessions.Create(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, sess, nil
}

func (as *AuthService) Logout(sessionID string) error {
	return as.sessions.Delete(sessionID)
}

// UpdateProfile changes the username and, when newPassword is non-empty,
// the password.
func (as *AuthService) UpdateProfile(userID int64, username, newPassword string) (*models.User, error) {
	existing, err := as.users.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != userID {
		return nil, ErrUsernameTaken
	}

	if err := as.users.UpdateUsername(userID, username); err != nil {
		return nil, err
	}

	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if err := as.users.UpdatePassword(userID, string(hash)); err != nil {
			return nil, err
		}
	}

	return as.users.GetUserByID(userID)
}
