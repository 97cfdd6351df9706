package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskloop/taskloop-api/internal/domain"
	"github.com/taskloop/taskloop-api/internal/platform/logger"
	"github.com/taskloop/taskloop-api/internal/store"
)

// taskColumns is the canonical select list, kept in one place so every
// read scans the same shape.
const taskColumns = "id, user_id, title, description, status, priority, due_date, tags, subtasks, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	tags, subtasks, err := marshalTaskJSON(task)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, tags, subtasks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		tags,
		subtasks,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		mapped := mapError(err)
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return mapped
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID. The owner is part of the
// predicate, so a task owned by someone else scans as no rows at all.
func (s *PostgresTaskStore) GetByID(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1 AND user_id = $2", taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", taskID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	return task, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	tags, subtasks, err := marshalTaskJSON(task)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4,
		    due_date = $5, tags = $6, subtasks = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		tags,
		subtasks,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2",
		taskID,
		userID,
	)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return err
	}

	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// List implements store.TaskStore.List. The count query reuses the
// compiled WHERE clause verbatim, so pagination metadata can never
// drift from the page contents.
func (s *PostgresTaskStore) List(ctx context.Context, userID uuid.UUID, query store.TaskQuery) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	compiled, err := compileTaskQuery(userID, query)
	if err != nil {
		return nil, err
	}

	fetchSQL := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		taskColumns, compiled.where, compiled.orderBy, compiled.limit, compiled.offset,
	)

	rows, err := s.db.QueryContext(ctx, fetchSQL, compiled.args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0, compiled.limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM tasks WHERE %s", compiled.where)
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, compiled.args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return store.NewTaskPage(tasks, query.Page, query.Limit, total), nil
}

// Stats implements store.TaskStore.Stats. All counts share the single
// now supplied by the caller.
func (s *PostgresTaskStore) Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*store.TaskStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats := &store.TaskStats{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}

	// Grouping by the raw stored column keeps historical out-of-enum
	// values visible as their own buckets.
	for _, group := range []struct {
		column string
		dest   map[string]int
	}{
		{"status", stats.ByStatus},
		{"priority", stats.ByPriority},
	} {
		query := fmt.Sprintf(
			"SELECT %s, COUNT(*) FROM tasks WHERE user_id = $1 GROUP BY %s",
			group.column, group.column,
		)
		rows, err := s.db.QueryContext(ctx, query, userID)
		if err != nil {
			log.Error("failed to aggregate tasks",
				slog.String("error", err.Error()),
				slog.String("column", group.column),
				slog.String("user_id", userID.String()))
			return nil, err
		}

		for rows.Next() {
			var value string
			var count int
			if err := rows.Scan(&value, &count); err != nil {
				_ = rows.Close()
				return nil, err
			}
			group.dest[value] = count
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return nil, err
		}
		_ = rows.Close()
	}

	// Every task lands in exactly one status bucket.
	for _, count := range stats.ByStatus {
		stats.Total += count
	}

	overdueSQL := `
		SELECT COUNT(*) FROM tasks
		WHERE user_id = $1 AND due_date < $2 AND status != $3
	`
	err := s.db.QueryRowContext(ctx, overdueSQL, userID, now, domain.TaskStatusCompleted).
		Scan(&stats.Overdue)
	if err != nil {
		log.Error("failed to count overdue tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return stats, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row, decoding the jsonb tag and subtask
// columns into their domain slices.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var dueDate sql.NullTime
	var tagsJSON, subtasksJSON []byte

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&task.Status,
		&task.Priority,
		&dueDate,
		&tagsJSON,
		&subtasksJSON,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = description.String
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}

	if err := json.Unmarshal(tagsJSON, &task.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode task tags: %w", err)
	}
	if err := json.Unmarshal(subtasksJSON, &task.Subtasks); err != nil {
		return nil, fmt.Errorf("failed to decode task subtasks: %w", err)
	}

	return &task, nil
}

// marshalTaskJSON encodes the tag and subtask slices for the jsonb
// columns, normalizing nil slices to empty arrays.
func marshalTaskJSON(task *domain.Task) (tags, subtasks []byte, err error) {
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Subtasks == nil {
		task.Subtasks = []domain.Subtask{}
	}

	tags, err = json.Marshal(task.Tags)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode task tags: %w", err)
	}
	subtasks, err = json.Marshal(task.Subtasks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode task subtasks: %w", err)
	}
	return tags, subtasks, nil
}
