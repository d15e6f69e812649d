package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// schedulerStore keeps scheduler tasks and their run history.
type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

const taskColumns = `id, name, interval_ms, last_run_ms, next_run_ms, last_success_ms, last_error, enabled`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// GetTask returns a task, or nil and no error when it does not exist.
func (s *schedulerStore) GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM scheduled_tasks WHERE id = ?`, taskID)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading task %s: %w", taskID, err)
	}
	return task, nil
}

// ListTasks returns every task ordered by ID.
func (s *schedulerStore) ListTasks(ctx context.Context) ([]domain.ScheduledTask, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM scheduled_tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.ScheduledTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// SaveTask inserts or replaces a task.
func (s *schedulerStore) SaveTask(ctx context.Context, task *domain.ScheduledTask) error {
	if task == nil {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scheduled_tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			interval_ms = excluded.interval_ms,
			last_run_ms = excluded.last_run_ms,
			next_run_ms = excluded.next_run_ms,
			last_success_ms = excluded.last_success_ms,
			last_error = excluded.last_error,
			enabled = excluded.enabled
	`, task.ID, task.Name, task.Interval.Milliseconds(),
		toMillis(task.LastRun), toMillis(task.NextRun), toMillis(task.LastSuccess),
		nullString(task.LastError), task.Enabled)
	if err != nil {
		return fmt.Errorf("saving task %s: %w", task.ID, err)
	}
	return nil
}

// DeleteTask removes a task and its history.
func (s *schedulerStore) DeleteTask(ctx context.Context, taskID string) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM task_results WHERE task_id = ?`, taskID); err != nil {
			return fmt.Errorf("deleting history of %s: %w", taskID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM scheduled_tasks WHERE id = ?`, taskID); err != nil {
			return fmt.Errorf("deleting task %s: %w", taskID, err)
		}
		return nil
	})
}

// RecordResult appends a run to the task history.
func (s *schedulerStore) RecordResult(ctx context.Context, result *domain.TaskResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO task_results (task_id, started_ms, ended_ms, success, error, items_processed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, result.TaskID, result.StartedAt.UnixMilli(), result.EndedAt.UnixMilli(),
		result.Success, nullString(result.Error), result.ItemsProcessed)
	if err != nil {
		return fmt.Errorf("recording result for %s: %w", result.TaskID, err)
	}
	return nil
}

// GetTaskHistory returns up to limit results, most recent first.
// A limit of zero or less returns every result.
func (s *schedulerStore) GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT task_id, started_ms, ended_ms, success, error, items_processed
		FROM task_results
		WHERE task_id = ?
		ORDER BY started_ms DESC, id DESC
		LIMIT ?
	`, taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history of %s: %w", taskID, err)
	}
	defer rows.Close()

	var results []domain.TaskResult
	for rows.Next() {
		var (
			r              domain.TaskResult
			started, ended int64
			errMsg         sql.NullString
		)
		if err := rows.Scan(&r.TaskID, &started, &ended, &r.Success, &errMsg, &r.ItemsProcessed); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.StartedAt = time.UnixMilli(started).UTC()
		r.EndedAt = time.UnixMilli(ended).UTC()
		r.Error = errMsg.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// PruneHistory keeps the most recent keep results per task.
func (s *schedulerStore) PruneHistory(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM task_results
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY task_id ORDER BY started_ms DESC, id DESC) AS rn
				FROM task_results
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning task history: %w", err)
	}
	return nil
}

func scanTask(row rowScanner) (*domain.ScheduledTask, error) {
	var (
		task                      domain.ScheduledTask
		intervalMs                int64
		lastRun, nextRun, success sql.NullInt64
		lastError                 sql.NullString
	)
	if err := row.Scan(&task.ID, &task.Name, &intervalMs,
		&lastRun, &nextRun, &success, &lastError, &task.Enabled); err != nil {
		return nil, err
	}
	task.Interval = time.Duration(intervalMs) * time.Millisecond
	task.LastRun = fromMillis(lastRun)
	task.NextRun = fromMillis(nextRun)
	task.LastSuccess = fromMillis(success)
	task.LastError = lastError.String
	return &task, nil
}

// toMillis stores the zero time as NULL.
func toMillis(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}

func fromMillis(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.UnixMilli(v.Int64).UTC()
}

// nullString stores the empty string as NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
