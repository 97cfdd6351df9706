package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taskloop/taskloop-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "nil error",
			err:     nil,
			wantErr: nil,
		},
		{
			name:    "no rows",
			err:     sql.ErrNoRows,
			wantErr: store.ErrNotFound,
		},
		{
			name: "wrapped no rows",
			err:  fmt.Errorf("query: %w", sql.ErrNoRows),

			wantErr: store.ErrNotFound,
		},
		{
			name:    "unique violation on email",
			err:     &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"},
			wantErr: store.ErrEmailExists,
		},
		{
			name:    "unique violation on username",
			err:     &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_username_key"},
			wantErr: store.ErrUsernameExists,
		},
		{
			name:    "unique violation on unknown constraint",
			err:     &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "something_else"},
			wantErr: store.ErrDuplicate,
		},
		{
			name:    "foreign key violation",
			err:     &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_user_id_fkey"},
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := mapError(tc.err)
			if tc.wantErr == nil {
				assert.NoError(t, got)
			} else {
				assert.ErrorIs(t, got, tc.wantErr)
			}
		})
	}

	t.Run("unrecognized errors pass through", func(t *testing.T) {
		t.Parallel()
		err := errors.New("connection reset")
		assert.Equal(t, err, mapError(err))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}
