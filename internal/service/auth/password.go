package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt work factors.
const (
	// CostStandard is used for signup, profile updates and admin updates.
	CostStandard = 10
	// CostStrong is used for password change and password reset.
	CostStrong = 12
)

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	// Hash returns the bcrypt hash of password at the given cost.
	Hash(password string, cost int) (string, error)

	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct{}

// NewBcryptHasher creates a new BcryptHasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash implements the PasswordHasher interface using bcrypt.
func (BcryptHasher) Hash(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare implements the PasswordHasher interface using bcrypt.
func (BcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
