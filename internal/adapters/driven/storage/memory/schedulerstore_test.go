package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

func TestSchedulerStore_Tasks(t *testing.T) {
	ctx := context.Background()
	store := NewSchedulerStore()

	task, err := store.GetTask(ctx, domain.TaskIDLinkIndex)
	require.NoError(t, err)
	assert.Nil(t, task)

	require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{ID: domain.TaskIDLinkIndex, Interval: time.Minute}))
	require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{ID: domain.TaskIDVersionSnapshot}))

	task, err = store.GetTask(ctx, domain.TaskIDLinkIndex)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, time.Minute, task.Interval)

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, domain.TaskIDLinkIndex, tasks[0].ID)

	require.NoError(t, store.DeleteTask(ctx, domain.TaskIDLinkIndex))
	tasks, _ = store.ListTasks(ctx)
	assert.Len(t, tasks, 1)

	assert.ErrorIs(t, store.SaveTask(ctx, nil), domain.ErrInvalidInput)
}

func TestSchedulerStore_History(t *testing.T) {
	ctx := context.Background()
	store := NewSchedulerStore()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.RecordResult(ctx, &domain.TaskResult{
			TaskID:         domain.TaskIDLinkIndex,
			ItemsProcessed: i,
		}))
	}

	history, err := store.GetTaskHistory(ctx, domain.TaskIDLinkIndex, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 5, history[0].ItemsProcessed)
	assert.Equal(t, 4, history[1].ItemsProcessed)

	require.NoError(t, store.PruneHistory(ctx, 3))
	history, _ = store.GetTaskHistory(ctx, domain.TaskIDLinkIndex, 0)
	require.Len(t, history, 3)
	assert.Equal(t, 3, history[2].ItemsProcessed)
}
