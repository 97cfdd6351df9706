package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("creates valid user", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("jdoe", "jdoe@example.com", "$2a$10$hash", "Jane", "Doe")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "jdoe", user.Username)
		assert.Equal(t, "jdoe@example.com", user.Email)
		assert.Equal(t, "Jane", user.FirstName)
		assert.Equal(t, "Doe", user.LastName)
		assert.Nil(t, user.LastLoginAt)
	})

	tests := []struct {
		name     string
		username string
		email    string
		hash     string
		wantErr  error
	}{
		{"empty username", "", "jdoe@example.com", "hash", ErrEmptyUsername},
		{"empty email", "jdoe", "", "hash", ErrEmptyEmail},
		{"empty hashed password", "jdoe", "jdoe@example.com", "", ErrEmptyHashedPassword},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			user, err := NewUser(tc.username, tc.email, tc.hash, "Jane", "Doe")
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, user)
		})
	}
}

func TestUserJSONNeverExposesPasswordHash(t *testing.T) {
	t.Parallel()

	user, err := NewUser("jdoe", "jdoe@example.com", "$2a$10$topsecret", "Jane", "Doe")
	require.NoError(t, err)

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "topsecret")
	assert.NotContains(t, string(data), "hashed")
}
