package services

import (
	"noteboard/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ==================== MOCKS ====================

// MockUserRepository is a mock implementation of UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

var _ UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) CreateUser(username, email, passwordHash string, isAdmin int) (int64, error) {
	args := m.Called(username, email, passwordHash, isAdmin)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(userID int64) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsernameOrEmail(username, email string) (*models.User, error) {
	args := m.Called(username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUsername(userID int64, username string) error {
	args := m.Called(userID, username)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(userID int64, passwordHash string) error {
	args := m.Called(userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetAdminLevel(userID int64, level int) error {
	args := m.Called(userID, level)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockSessionStore is a mock implementation of SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

var _ SessionStore = (*MockSessionStore)(nil)

func (m *MockSessionStore) Create(userID int64) (*models.Session, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) Get(sessionID string) (*models.Session, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) Touch(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockSessionStore) DeleteByUserID(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// ==================== TESTS ====================

func TestAuthService_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByUsernameOrEmail", "alice", "alice@example.com").Return(nil, nil)
		users.On("CreateUser", "alice", "alice@example.com", mock.AnythingOfType("string"), models.RoleUser).Return(int64(1), nil)
		users.On("GetUserByID", int64(1)).Return(&models.User{ID: 1, Username: "alice"}, nil)

		user, err := NewAuthService(users, new(MockSessionStore)).Register("alice", "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)

		// The stored value must be a bcrypt hash, never the plain password
		hash := users.Calls[1].Arguments.String(2)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret1")))

		users.AssertExpectations(t)
	})

	t.Run("Error - Username or email taken", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByUsernameOrEmail", "alice", "new@example.com").Return(&models.User{ID: 1}, nil)

		_, err := NewAuthService(users, new(MockSessionStore)).Register("alice", "new@example.com", "secret1")
		assert.ErrorIs(t, err, ErrUsernameTaken)
		users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	account := &models.User{ID: 1, Username: "alice", Password: string(hash)}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByUsername", "alice").Return(account, nil)

		sessions := new(MockSessionStore)
		sessions.On("Create", int64(1)).Return(&models.Session{ID: "sess-1", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil)

		user, sess, err := NewAuthService(users, sessions).Login("alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "sess-1", sess.ID)
	})

	t.Run("Error - Wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByUsername", "alice").Return(account, nil)

		sessions := new(MockSessionStore)
		_, _, err := NewAuthService(users, sessions).Login("alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Error - Unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByUsername", "ghost").Return(nil, nil)

		_, _, err := NewAuthService(users, new(MockSessionStore)).Login("ghost", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Run("Success - Username change only keeps password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByUsername", "alice2").Return(nil, nil)
		users.On("UpdateUsername", int64(1), "alice2").Return(nil)
		users.On("GetUserByID", int64(1)).Return(&models.User{ID: 1, Username: "alice2"}, nil)

		user, err := NewAuthService(users, new(MockSessionStore)).UpdateProfile(1, "alice2", "")
		require.NoError(t, err)
		assert.Equal(t, "alice2", user.Username)
		users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
	})

	t.Run("Success - Password change", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByUsername", "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)
		users.On("UpdateUsername", int64(1), "alice").Return(nil)
		users.On("UpdatePassword", int64(1), mock.AnythingOfType("string")).Return(nil)
		users.On("GetUserByID", int64(1)).Return(&models.User{ID: 1, Username: "alice"}, nil)

		_, err := NewAuthService(users, new(MockSessionStore)).UpdateProfile(1, "alice", "newsecret")
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("Error - Username taken by someone else", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByUsername", "bob").Return(&models.User{ID: 2, Username: "bob"}, nil)

		_, err := NewAuthService(users, new(MockSessionStore)).UpdateProfile(1, "bob", "")
		assert.ErrorIs(t, err, ErrUsernameTaken)
		users.AssertNotCalled(t, "UpdateUsername", mock.Anything, mock.Anything)
	})
}
