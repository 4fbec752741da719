package admin

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("admin not found")
	ErrUsernameAlreadyUsed = errors.New("username already used")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUsernameRequired    = errors.New("username is required")
	ErrPasswordTooShort    = errors.New("password is too short")
)

// Admin represents a dashboard operator account.
type Admin struct {
	ID           string // UUID
	Username     string
	PasswordHash string
	IsSuper      bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
