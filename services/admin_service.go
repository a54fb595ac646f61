package services

import (
	"fmt"
	"noteboard/models"

	"golang.org/x/crypto/bcrypt"
)

// AdminService handles the user management surface. Listing is open to any
// admin; promote/demote/delete are restricted to the superadmin, and the
// superadmin account itself can never be targeted.
type AdminService struct {
	users    UserRepository
	sessions SessionStore
}

func NewAdminService(users UserRepository, sessions SessionStore) *AdminService {
	return &AdminService{users: users, sessions: sessions}
}

func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.users.ListUsers()
}

func (s *AdminService) Promote(actorID, targetID int64) error {
	return s.setLevel(actorID, targetID, models.RoleAdmin)
}

func (s *AdminService) Demote(actorID, targetID int64) error {
	return s.setLevel(actorID, targetID, models.RoleUser)
}

func (s *AdminService) setLevel(actorID, targetID int64, level int) error {
	target, err := s.authorize(actorID, targetID)
	if err != nil {
		return err
	}
	return s.users.SetAdminLevel(target.ID, level)
}

// DeleteUser removes the account along with its sessions. Notes and
// reactions cascade at the schema level.
func (s *AdminService) DeleteUser(actorID, targetID int64) error {
	target, err := s.authorize(actorID, targetID)
	if err != nil {
		return err
	}

	if err := s.sessions.DeleteByUserID(target.ID); err != nil {
		return err
	}
	return s.users.DeleteUser(target.ID)
}

func (s *AdminService) authorize(actorID, targetID int64) (*models.User, error) {
	actor, err := s.users.GetUserByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || actor.IsAdmin != models.RoleSuperadmin {
		return nil, ErrSuperadminOnly
	}

	target, err := s.users.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}
	if target.IsAdmin == models.RoleSuperadmin {
		return nil, ErrSuperadminTarget
	}

	return target, nil
}

// EnsureSuperadmin creates the environment-configured superadmin account on
// startup if it does not exist yet. An existing account keeps its password.
func (s *AdminService) EnsureSuperadmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	existing, err := s.users.GetUserByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.IsAdmin != models.RoleSuperadmin {
			return s.users.SetAdminLevel(existing.ID, models.RoleSuperadmin)
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	email := fmt.Sprintf("%s@local", username)
	_, err = s.users.CreateUser(username, email, string(hash), models.RoleSuperadmin)
	return err
}
