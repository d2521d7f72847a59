package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_auth_service.go -package mocks github.com/mmjournal/mmjournal/internal/domain AuthService
//go:generate mockgen -destination mocks/mock_password_hasher.go -package mocks github.com/mmjournal/mmjournal/internal/domain PasswordHasher

// PasswordHasher is the one-way salted hash primitive
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

type AuthResult struct {
	Identity  Identity
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*Identity, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	// ResolveSession verifies a session token and reloads its user
	ResolveSession(ctx context.Context, token string) (*Identity, error)
	// ResolveBasic authenticates per-request credentials
	ResolveBasic(ctx context.Context, email, password string) (*Identity, error)
}
