package mocks

import (
	"context"

	"github.com/phrazzld/taskify-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// TokenService is a testify mock of auth.TokenService.
type TokenService struct {
	mock.Mock
}

var _ auth.TokenService = (*TokenService)(nil)

func (m *TokenService) Issue(ctx context.Context, purpose auth.Purpose, identity auth.Identity) (string, error) {
	args := m.Called(ctx, purpose, identity)
	return args.String(0), args.Error(1)
}

func (m *TokenService) Verify(ctx context.Context, purpose auth.Purpose, token string) (*auth.Claims, error) {
	args := m.Called(ctx, purpose, token)
	if claims, ok := args.Get(0).(*auth.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

// PasswordHasher is a testify mock of auth.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

var _ auth.PasswordHasher = (*PasswordHasher)(nil)

func (m *PasswordHasher) Hash(password string, cost int) (string, error) {
	args := m.Called(password, cost)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}
