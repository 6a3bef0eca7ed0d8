package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phrazzld/taskify-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestWriteHashes(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	passwords := []string{"first-secret", "тест123"}
	require.NoError(t, writeHashes(&out, auth.NewBcryptHasher(), bcrypt.MinCost, passwords))

	hashes := strings.Fields(out.String())
	require.Len(t, hashes, len(passwords))
	for i, hash := range hashes {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(passwords[i])))
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	}
}

func TestReadLines(t *testing.T) {
	t.Parallel()

	lines, err := readLines(strings.NewReader("one\n\ntwo words\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two words"}, lines)
}
