package services

import "errors"

// Common service-level errors
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username or email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")

	// Note errors
	ErrNoteNotFound  = errors.New("note not found")
	ErrContentLength = errors.New("content must be between 1 and 500 characters")
	ErrEmojiLength   = errors.New("emoji must be between 1 and 10 characters")
	ErrNestedReply   = errors.New("cannot reply to a reply")

	// Admin errors
	ErrSuperadminOnly   = errors.New("only the superadmin can perform that action")
	ErrSuperadminTarget = errors.New("cannot modify the superadmin account")
)
