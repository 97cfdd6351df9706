package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/store"
)

// Accepted layouts for the due-date bound parameters.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseTaskQuery decodes the listing query string into a validated
// store.TaskQuery. Absent parameters take their defaults; malformed
// ones fail with domain.ErrInvalidQuery rather than being silently
// dropped or passed through.
func parseTaskQuery(values url.Values) (store.TaskQuery, error) {
	q := store.DefaultTaskQuery()

	var err error
	if q.Page, err = parseIntParam(values, "page", q.Page); err != nil {
		return q, err
	}
	if q.Limit, err = parseIntParam(values, "limit", q.Limit); err != nil {
		return q, err
	}

	q.Search = values.Get("search")

	// Empty strings mean "no filter", not a literal empty value.
	q.Status = domain.TaskStatus(values.Get("status"))
	q.Priority = domain.TaskPriority(values.Get("priority"))

	if q.DueFrom, err = parseDueDateParam(values, "dueDateFrom"); err != nil {
		return q, err
	}
	if q.DueTo, err = parseDueDateParam(values, "dueDateTo"); err != nil {
		return q, err
	}

	if sortBy := values.Get("sortBy"); sortBy != "" {
		field, dir, _ := strings.Cut(sortBy, ":")
		q.SortBy = store.SortField(field)
		q.SortDesc = dir == "desc"
	}

	if err := q.Validate(); err != nil {
		return q, err
	}

	return q, nil
}

func parseIntParam(values url.Values, name string, def int) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidQuery, name)
	}
	return n, nil
}

func parseDueDateParam(values url.Values, name string) (*time.Time, error) {
	raw := values.Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s is not a valid date", domain.ErrInvalidQuery, name)
}

// parseDueDate parses a due date from a request body, accepting the
// same layouts as the query parameters.
func parseDueDate(raw string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("dueDate is not a valid date")
}
