package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	// MinCost keeps the test fast; production uses the configured cost.
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash and compare round trip", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.NoError(t, hasher.Compare(hash, "correct horse battery staple"))
	})

	t.Run("compare rejects wrong password", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)

		assert.Error(t, hasher.Compare(hash, "incorrect horse"))
	})

	t.Run("compare rejects garbage hash", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, hasher.Compare("not-a-bcrypt-hash", "anything"))
	})

	t.Run("zero cost selects default", func(t *testing.T) {
		t.Parallel()
		h := NewBcryptHasher(0)
		assert.Equal(t, bcrypt.DefaultCost, h.cost)
	})
}
