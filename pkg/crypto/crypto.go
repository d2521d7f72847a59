package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher implements the hash/verify primitive used by the auth service.
// Cost can be lowered in tests, anything below bcrypt.MinCost is raised to it.
type PasswordHasher struct {
	Cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return &PasswordHasher{Cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	return HashPasswordWithCost(password, h.Cost)
}

func (h *PasswordHasher) Verify(password, stored string) bool {
	return CheckPasswordHash(password, stored)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	pwd, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("HashPassword error: %w", err)
	}

	return string(pwd), nil
}

// CheckPasswordHash reports false for malformed hashes as well as mismatches
func CheckPasswordHash(password string, hash string) (isValid bool) {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return false
	}
	return true
}
