package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/store"
)

// sortColumns maps the enumerated sort fields to real column names.
// The compiler only ever emits values from this table, so request
// input cannot name an arbitrary column.
var sortColumns = map[store.SortField]string{
	store.SortByCreatedAt: "created_at",
	store.SortByUpdatedAt: "updated_at",
	store.SortByDueDate:   "due_date",
	store.SortByPriority:  "priority",
	store.SortByStatus:    "status",
	store.SortByTitle:     "title",
}

// compiledTaskQuery is the executable form of a store.TaskQuery: a
// parameterized WHERE clause shared by the page fetch and the count,
// plus the ORDER BY / LIMIT / OFFSET tail for the fetch.
type compiledTaskQuery struct {
	where   string
	args    []any
	orderBy string
	limit   int
	offset  int
}

// compileTaskQuery builds the executable query for one listing request.
// The owner predicate comes first and from the authenticated user ID
// only; every other condition is appended as a parameterized AND.
func compileTaskQuery(userID uuid.UUID, q store.TaskQuery) (*compiledTaskQuery, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	conds := []string{"user_id = $1"}
	args := []any{userID}

	next := func() int { return len(args) + 1 }

	if q.Search != "" {
		n := next()
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR EXISTS "+
				"(SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE tag ILIKE $%d))",
			n, n, n))
		args = append(args, "%"+escapeLike(q.Search)+"%")
	}

	if q.Status != "" {
		conds = append(conds, fmt.Sprintf("status = $%d", next()))
		args = append(args, string(q.Status))
	}

	if q.Priority != "" {
		conds = append(conds, fmt.Sprintf("priority = $%d", next()))
		args = append(args, string(q.Priority))
	}

	if q.DueFrom != nil {
		conds = append(conds, fmt.Sprintf("due_date >= $%d", next()))
		args = append(args, *q.DueFrom)
	}

	if q.DueTo != nil {
		conds = append(conds, fmt.Sprintf("due_date <= $%d", next()))
		args = append(args, *q.DueTo)
	}

	return &compiledTaskQuery{
		where:   strings.Join(conds, " AND "),
		args:    args,
		orderBy: orderByClause(q),
		limit:   q.Limit,
		offset:  q.Offset(),
	}, nil
}

// orderByClause renders the ORDER BY tail. A missing due date sorts as
// the greatest value (last ascending, first descending), and id breaks
// ties so repeated identical queries paginate without gaps or repeats.
func orderByClause(q store.TaskQuery) string {
	col := sortColumns[q.SortBy]
	dir := "ASC"
	nulls := ""
	if q.SortDesc {
		dir = "DESC"
	}
	if q.SortBy == store.SortByDueDate {
		if q.SortDesc {
			nulls = " NULLS FIRST"
		} else {
			nulls = " NULLS LAST"
		}
	}
	return fmt.Sprintf("%s %s%s, id ASC", col, dir, nulls)
}

// escapeLike neutralizes LIKE wildcards in user-supplied search text so
// the needle is matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
