package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a row does not exist or is not visible to the requester
type ErrNotFound struct {
	Entity string
	ID     int64
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %d", e.Entity, e.ID)
}

// ErrUserNotFound is returned when no user matches a lookup
type ErrUserNotFound struct {
	Message string
}

func (e *ErrUserNotFound) Error() string {
	return e.Message
}

// ErrUserExists is returned when registering an email that is already taken
type ErrUserExists struct {
	Email string
}

func (e *ErrUserExists) Error() string {
	return "Email already registered"
}

// ErrRateLimited is a refused login carrying the time until the next attempt
// is counted. It matches ErrTooManyAttempts with errors.Is.
type ErrRateLimited struct {
	RetryAfter time.Duration
}

func (e *ErrRateLimited) Error() string {
	return ErrTooManyAttempts.Error()
}

func (e *ErrRateLimited) Unwrap() error {
	return ErrTooManyAttempts
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// Auth outcomes shown to the user as-is
var (
	ErrPasswordMismatch = errors.New("Passwords didn't match")
	ErrNotRegistered    = errors.New("Email not registered")
	ErrLoginFailed      = errors.New("Login Failed!")
	ErrTooManyAttempts  = errors.New("Too many login attempts, try again later")
	ErrUnauthorized     = errors.New("You must be logged in to view this content.")
	ErrSessionExpired   = errors.New("session expired")
)
