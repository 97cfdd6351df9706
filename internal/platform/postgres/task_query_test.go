package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/store"
)

func TestCompileTaskQueryOwnerPredicate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	// With and without every optional filter, the owner predicate is the
	// first condition and the first argument.
	queries := []store.TaskQuery{
		store.DefaultTaskQuery(),
		{
			Page: 3, Limit: 25,
			Search:   "report",
			Status:   domain.TaskStatusPending,
			Priority: domain.TaskPriorityHigh,
			SortBy:   store.SortByDueDate,
		},
	}

	for _, q := range queries {
		compiled, err := compileTaskQuery(userID, q)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(compiled.where, "user_id = $1"), compiled.where)
		require.NotEmpty(t, compiled.args)
		assert.Equal(t, userID, compiled.args[0])
	}
}

func TestCompileTaskQueryFilters(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("no optional filters", func(t *testing.T) {
		t.Parallel()
		compiled, err := compileTaskQuery(userID, store.DefaultTaskQuery())
		require.NoError(t, err)

		assert.Equal(t, "user_id = $1", compiled.where)
		assert.Len(t, compiled.args, 1)
		assert.Equal(t, 10, compiled.limit)
		assert.Equal(t, 0, compiled.offset)
	})

	t.Run("search matches title description and tags", func(t *testing.T) {
		t.Parallel()
		q := store.DefaultTaskQuery()
		q.Search = "report"

		compiled, err := compileTaskQuery(userID, q)
		require.NoError(t, err)

		assert.Contains(t, compiled.where, "title ILIKE $2")
		assert.Contains(t, compiled.where, "description ILIKE $2")
		assert.Contains(t, compiled.where, "jsonb_array_elements_text(tags)")
		assert.Equal(t, []any{userID, "%report%"}, compiled.args)
	})

	t.Run("search escapes like wildcards", func(t *testing.T) {
		t.Parallel()
		q := store.DefaultTaskQuery()
		q.Search = "100%_done"

		compiled, err := compileTaskQuery(userID, q)
		require.NoError(t, err)

		assert.Equal(t, `%100\%\_done%`, compiled.args[1])
	})

	t.Run("status and priority filters", func(t *testing.T) {
		t.Parallel()
		q := store.DefaultTaskQuery()
		q.Status = domain.TaskStatusInProgress
		q.Priority = domain.TaskPriorityLow

		compiled, err := compileTaskQuery(userID, q)
		require.NoError(t, err)

		assert.Contains(t, compiled.where, "status = $2")
		assert.Contains(t, compiled.where, "priority = $3")
		assert.Equal(t, []any{userID, "in-progress", "low"}, compiled.args)
	})

	t.Run("inclusive due date bounds", func(t *testing.T) {
		t.Parallel()
		q := store.DefaultTaskQuery()
		q.DueFrom = &from
		q.DueTo = &to

		compiled, err := compileTaskQuery(userID, q)
		require.NoError(t, err)

		assert.Contains(t, compiled.where, "due_date >= $2")
		assert.Contains(t, compiled.where, "due_date <= $3")
		assert.Equal(t, []any{userID, from, to}, compiled.args)
	})

	t.Run("single due date bound", func(t *testing.T) {
		t.Parallel()
		q := store.DefaultTaskQuery()
		q.DueTo = &to

		compiled, err := compileTaskQuery(userID, q)
		require.NoError(t, err)

		assert.NotContains(t, compiled.where, ">=")
		assert.Contains(t, compiled.where, "due_date <= $2")
	})

	t.Run("pagination offset", func(t *testing.T) {
		t.Parallel()
		q := store.DefaultTaskQuery()
		q.Page = 4
		q.Limit = 25

		compiled, err := compileTaskQuery(userID, q)
		require.NoError(t, err)

		assert.Equal(t, 25, compiled.limit)
		assert.Equal(t, 75, compiled.offset)
	})

	t.Run("invalid query rejected", func(t *testing.T) {
		t.Parallel()
		q := store.DefaultTaskQuery()
		q.SortBy = "secrets"

		compiled, err := compileTaskQuery(userID, q)
		assert.ErrorIs(t, err, domain.ErrInvalidQuery)
		assert.Nil(t, compiled)
	})
}

func TestOrderByClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		q    store.TaskQuery
		want string
	}{
		{
			name: "default newest first",
			q:    store.TaskQuery{SortBy: store.SortByCreatedAt, SortDesc: true},
			want: "created_at DESC, id ASC",
		},
		{
			name: "title ascending",
			q:    store.TaskQuery{SortBy: store.SortByTitle},
			want: "title ASC, id ASC",
		},
		{
			name: "due date ascending puts missing dates last",
			q:    store.TaskQuery{SortBy: store.SortByDueDate},
			want: "due_date ASC NULLS LAST, id ASC",
		},
		{
			name: "due date descending puts missing dates first",
			q:    store.TaskQuery{SortBy: store.SortByDueDate, SortDesc: true},
			want: "due_date DESC NULLS FIRST, id ASC",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, orderByClause(tc.q))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `plain`, escapeLike("plain"))
	assert.Equal(t, `\%`, escapeLike("%"))
	assert.Equal(t, `\_`, escapeLike("_"))
	assert.Equal(t, `\\`, escapeLike(`\`))
	assert.Equal(t, `a\%b\_c`, escapeLike("a%b_c"))
}
