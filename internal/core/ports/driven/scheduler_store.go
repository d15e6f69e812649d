package driven

import (
	"context"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// SchedulerStore keeps background task state across restarts, so snapshot
// and link index runs resume on their schedule.
type SchedulerStore interface {
	// GetTask returns nil, nil for an unknown ID.
	GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error)
	ListTasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// SaveTask inserts or replaces by ID.
	SaveTask(ctx context.Context, task *domain.ScheduledTask) error

	// DeleteTask removes the task and its run history.
	DeleteTask(ctx context.Context, taskID string) error

	RecordResult(ctx context.Context, result *domain.TaskResult) error

	// GetTaskHistory returns up to limit runs, newest first.
	GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error)

	// PruneHistory keeps the newest keep runs of every task.
	PruneHistory(ctx context.Context, keep int) error
}
