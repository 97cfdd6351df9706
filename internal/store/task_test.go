package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskloop/taskloop-api/internal/domain"
)

func TestTaskQueryValidate(t *testing.T) {
	t.Parallel()

	valid := DefaultTaskQuery()

	tests := []struct {
		name    string
		mutate  func(*TaskQuery)
		wantErr bool
	}{
		{"defaults are valid", func(*TaskQuery) {}, false},
		{"zero page", func(q *TaskQuery) { q.Page = 0 }, true},
		{"negative page", func(q *TaskQuery) { q.Page = -3 }, true},
		{"zero limit", func(q *TaskQuery) { q.Limit = 0 }, true},
		{"unknown sort field", func(q *TaskQuery) { q.SortBy = "passwordHash" }, true},
		{"empty sort field", func(q *TaskQuery) { q.SortBy = "" }, true},
		{"every sortable field", func(q *TaskQuery) { q.SortBy = SortByDueDate }, false},
		{"status filter set", func(q *TaskQuery) { q.Status = domain.TaskStatusCompleted }, false},
		{"unknown status", func(q *TaskQuery) { q.Status = "archived" }, true},
		{"unknown priority", func(q *TaskQuery) { q.Priority = "urgent" }, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			q := valid
			tc.mutate(&q)

			err := q.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidQuery)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskQueryOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, limit, want int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 25, 100},
	}

	for _, tc := range tests {
		tc := tc
		q := TaskQuery{Page: tc.page, Limit: tc.limit}
		assert.Equal(t, tc.want, q.Offset())
	}
}

func TestNewTaskPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		total     int
		limit     int
		wantPages int
	}{
		{"empty result", 0, 10, 0},
		{"exact multiple", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"single item", 1, 10, 1},
		{"limit of one", 7, 1, 7},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			page := NewTaskPage(nil, 1, tc.limit, tc.total)
			assert.Equal(t, tc.wantPages, page.Pages)
			assert.Equal(t, tc.total, page.Total)
		})
	}
}

func TestSortFieldIsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []SortField{
		SortByCreatedAt, SortByUpdatedAt, SortByDueDate,
		SortByPriority, SortByStatus, SortByTitle,
	} {
		assert.True(t, f.IsValid(), string(f))
	}
	assert.False(t, SortField("ownerId").IsValid())
	assert.False(t, SortField("created_at; DROP TABLE tasks").IsValid())
}

func TestDefaultTaskQuery(t *testing.T) {
	t.Parallel()

	q := DefaultTaskQuery()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, SortByCreatedAt, q.SortBy)
	assert.True(t, q.SortDesc)
	assert.Nil(t, q.DueFrom)
	assert.Nil(t, q.DueTo)
	assert.NoError(t, q.Validate())
}
