package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// SortField enumerates the task fields a listing may be ordered by.
// Anything outside this set is rejected before query compilation; sort
// input is never passed through to the database verbatim.
type SortField string

// Sortable task fields
const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByDueDate   SortField = "dueDate"
	SortByPriority  SortField = "priority"
	SortByStatus    SortField = "status"
	SortByTitle     SortField = "title"
)

// IsValid reports whether the field is in the sortable set.
func (f SortField) IsValid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByDueDate, SortByPriority, SortByStatus, SortByTitle:
		return true
	}
	return false
}

// TaskQuery is the declarative filter/sort/page specification for one
// listing request. The owner is not part of the query: stores receive
// the authenticated user ID separately and always scope by it, so no
// combination of query fields can reach another owner's rows.
type TaskQuery struct {
	Page  int
	Limit int

	// Search is a free-text needle matched case-insensitively against
	// title, description and tags. Empty means no search.
	Search string

	// Status and Priority are exact-match filters; the zero value means
	// no filter. Non-empty values must come from the known enums.
	Status   domain.TaskStatus
	Priority domain.TaskPriority

	// DueFrom and DueTo are inclusive due-date bounds, each optional.
	DueFrom *time.Time
	DueTo   *time.Time

	SortBy   SortField
	SortDesc bool
}

// DefaultTaskQuery returns the query used when a request supplies no
// parameters: first page of ten, newest first.
func DefaultTaskQuery() TaskQuery {
	return TaskQuery{
		Page:     1,
		Limit:    10,
		SortBy:   SortByCreatedAt,
		SortDesc: true,
	}
}

// Validate checks the query is well-formed.
// Returns an error wrapping domain.ErrInvalidQuery otherwise.
func (q TaskQuery) Validate() error {
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidQuery)
	}
	if q.Limit < 1 {
		return fmt.Errorf("%w: limit must be >= 1", domain.ErrInvalidQuery)
	}
	if !q.SortBy.IsValid() {
		return fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidQuery, string(q.SortBy))
	}
	if q.Status != "" && !q.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidQuery, string(q.Status))
	}
	if q.Priority != "" && !q.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidQuery, string(q.Priority))
	}
	return nil
}

// Offset translates page/limit into the number of rows to skip.
func (q TaskQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// TaskPage is one page of a filtered, sorted task listing together
// with the pagination bookkeeping computed from the same predicate.
type TaskPage struct {
	Tasks []*domain.Task
	Page  int
	Limit int
	Total int
	Pages int
}

// NewTaskPage assembles a TaskPage, deriving the page count as
// ceil(total/limit).
func NewTaskPage(tasks []*domain.Task, page, limit, total int) *TaskPage {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &TaskPage{
		Tasks: tasks,
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// TaskStats aggregates one user's tasks: totals, overdue count, and
// per-status/per-priority buckets keyed by the raw stored values so
// stale historical values show up rather than silently vanishing.
type TaskStats struct {
	Total      int
	Overdue    int
	ByStatus   map[string]int
	ByPriority map[string]int
}

// TaskStore defines the interface for task data persistence. Every
// operation is scoped to an owner; a task ID belonging to a different
// owner behaves exactly like a nonexistent ID.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given ID owned by userID.
	// Returns ErrTaskNotFound if no such task exists for this owner.
	GetByID(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// Update persists the complete task record, scoped by (ID, UserID).
	// Returns ErrTaskNotFound if no such task exists for this owner.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID owned by userID.
	// Returns ErrTaskNotFound if no such task exists for this owner.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// List returns one page of userID's tasks matching the query. The
	// total count uses the same predicate as the page fetch, and ties in
	// the sort order are broken by ID so pagination is deterministic.
	List(ctx context.Context, userID uuid.UUID, query TaskQuery) (*TaskPage, error)

	// Stats aggregates userID's tasks. The supplied now is the single
	// snapshot instant used for the overdue computation.
	Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*TaskStats, error)
}
