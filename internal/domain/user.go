package domain

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_user_repository.go -package mocks github.com/mmjournal/mmjournal/internal/domain UserRepository

// Key for storing the authenticated identity in context
type contextKey string

const IdentityKey contextKey = "identity"

// DefaultUserID is the shared owner whose categories and exercises every user sees
const DefaultUserID int64 = 1

// User is an account row. Password holds the stored hash and is never rendered.
type User struct {
	ID       int64  `json:"user_id" db:"user_id"`
	Email    string `json:"email_address" db:"email_address"`
	Password string `json:"-" db:"password"`
}

// Identity is what a request carries once authenticated
type Identity struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// WithIdentity stores the authenticated identity in the context
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFromContext returns the authenticated identity, if any
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*Identity)
	return id, ok && id != nil
}

// VisibleTo reports whether a row owned by ownerID may be read by userID
func VisibleTo(ownerID, userID int64) bool {
	return ownerID == userID || ownerID == DefaultUserID
}

type UserRepository interface {
	// CreateUser inserts a user and returns its generated id
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}
