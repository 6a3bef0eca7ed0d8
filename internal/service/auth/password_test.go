package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()
	password := "correct horse battery staple"

	for _, cost := range []int{CostStandard, CostStrong} {
		hash, err := hasher.Hash(password, cost)
		require.NoError(t, err)

		assert.NotEqual(t, password, hash)
		gotCost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, cost, gotCost)

		assert.NoError(t, hasher.Compare(hash, password))
		assert.ErrorIs(t, hasher.Compare(hash, "wrong password"), bcrypt.ErrMismatchedHashAndPassword)
	}
}
