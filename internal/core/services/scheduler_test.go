package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// countingLinkIndex counts rebuilds.
type countingLinkIndex struct {
	mu         sync.Mutex
	rebuilds   int
	rebuildErr error
}

var _ driving.LinkIndexService = (*countingLinkIndex)(nil)

func (c *countingLinkIndex) Rebuild(_ context.Context) (domain.IndexStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebuilds++
	return domain.IndexStats{Documents: 3}, c.rebuildErr
}

func (c *countingLinkIndex) Apply(context.Context, domain.DocumentChange) error { return nil }

func (c *countingLinkIndex) Watch(context.Context) error { return nil }

func (c *countingLinkIndex) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebuilds
}

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestScheduler_StartStop(t *testing.T) {
	links := &countingLinkIndex{}
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), memory.NewSchedulerStore(), nil, links)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- scheduler.Start(ctx) }()

	// New tasks are planned one interval ahead, so nothing runs yet.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, scheduler.Stop())
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Zero(t, links.calls())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), memory.NewSchedulerStore(), nil, nil)

	assert.NoError(t, scheduler.Stop())
}

func TestScheduler_DoubleStart(t *testing.T) {
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), memory.NewSchedulerStore(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = scheduler.Start(ctx)
	}()
	time.Sleep(50 * time.Millisecond)

	assert.NoError(t, scheduler.Start(context.Background()))

	cancel()
	require.NoError(t, scheduler.Stop())
	wg.Wait()
}

func TestScheduler_Disabled(t *testing.T) {
	config := domain.DefaultSchedulerConfig()
	config.Enabled = false
	store := memory.NewSchedulerStore()
	links := &countingLinkIndex{}

	require.NoError(t, NewScheduler(config, store, nil, links).Start(context.Background()))

	tasks, err := store.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Zero(t, links.calls())
}

func TestScheduler_InitialiseTasks(t *testing.T) {
	store := memory.NewSchedulerStore()
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), store, nil, nil)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	scheduler.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, scheduler.initialiseTasks(ctx))

	linkTask, err := store.GetTask(ctx, domain.TaskIDLinkIndex)
	require.NoError(t, err)
	require.NotNil(t, linkTask)
	assert.Equal(t, "Link Index", linkTask.Name)
	assert.True(t, linkTask.Enabled)
	assert.Equal(t, now.Add(15*time.Minute), linkTask.NextRun)

	snapTask, err := store.GetTask(ctx, domain.TaskIDVersionSnapshot)
	require.NoError(t, err)
	require.NotNil(t, snapTask)
	assert.Equal(t, "Version Snapshot", snapTask.Name)
	assert.False(t, snapTask.Enabled)
}

func TestScheduler_InitialiseTasks_SkipsZeroInterval(t *testing.T) {
	config := domain.DefaultSchedulerConfig()
	config.TaskConfigs[domain.TaskIDVersionSnapshot] = domain.TaskConfig{Enabled: true}
	store := memory.NewSchedulerStore()

	require.NoError(t, NewScheduler(config, store, nil, nil).initialiseTasks(context.Background()))

	task, err := store.GetTask(context.Background(), domain.TaskIDVersionSnapshot)
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestScheduler_EnsureTask(t *testing.T) {
	store := memory.NewSchedulerStore()
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), store, nil, nil)
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	scheduler.now = fixedClock(start)
	ctx := context.Background()

	require.NoError(t, scheduler.ensureTask(ctx, domain.TaskIDLinkIndex, domain.TaskConfig{Enabled: true, Interval: time.Hour}))

	t.Run("same interval keeps the plan", func(t *testing.T) {
		scheduler.now = fixedClock(start.Add(10 * time.Minute))
		require.NoError(t, scheduler.ensureTask(ctx, domain.TaskIDLinkIndex, domain.TaskConfig{Interval: time.Hour}))

		task, err := store.GetTask(ctx, domain.TaskIDLinkIndex)
		require.NoError(t, err)
		assert.Equal(t, start.Add(time.Hour), task.NextRun)
		assert.False(t, task.Enabled)
	})

	t.Run("new interval replans from now", func(t *testing.T) {
		later := start.Add(20 * time.Minute)
		scheduler.now = fixedClock(later)
		require.NoError(t, scheduler.ensureTask(ctx, domain.TaskIDLinkIndex, domain.TaskConfig{Enabled: true, Interval: 2 * time.Hour}))

		task, err := store.GetTask(ctx, domain.TaskIDLinkIndex)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, task.Interval)
		assert.Equal(t, later.Add(2*time.Hour), task.NextRun)
		assert.True(t, task.Enabled)
	})
}

func TestScheduler_RunLinkIndex(t *testing.T) {
	links := &countingLinkIndex{}
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), memory.NewSchedulerStore(), nil, links)

	n, err := scheduler.runLinkIndex(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, links.calls())
}

func TestScheduler_NilServicesDoNothing(t *testing.T) {
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), memory.NewSchedulerStore(), nil, nil)
	ctx := context.Background()

	n, err := scheduler.runLinkIndex(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = scheduler.runVersionSnapshot(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestScheduler_RunVersionSnapshot(t *testing.T) {
	vault := memory.NewVault()
	vault.Put("Rules.md", "# Rules")
	configStore := memory.NewConfigStore()
	require.NoError(t, configStore.Set("versions.tracked", []string{"Rules.md"}))
	versions := NewVersionService(vault, NewSettingsService(configStore))

	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), memory.NewSchedulerStore(), versions, nil)
	scheduler.now = fixedClock(time.UnixMilli(1000))

	n, err := scheduler.runVersionSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	doc, err := vault.ReadDocument(context.Background(), "Wargame Rules Versions/Rules_v1000.md")
	require.NoError(t, err)
	assert.Equal(t, "# Rules", doc.Content)
}

func TestScheduler_CheckAndRunDueTasks(t *testing.T) {
	store := memory.NewSchedulerStore()
	links := &countingLinkIndex{}
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), store, nil, links)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	scheduler.now = fixedClock(now)
	ctx := context.Background()

	require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{
		ID: domain.TaskIDLinkIndex, Name: "Link Index", Interval: time.Hour,
		NextRun: now.Add(-time.Minute), Enabled: true,
	}))
	require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{
		ID: domain.TaskIDVersionSnapshot, Name: "Version Snapshot", Interval: time.Hour,
		NextRun: now.Add(time.Minute), Enabled: true,
	}))

	scheduler.checkAndRunDueTasks(ctx)
	scheduler.wg.Wait()

	assert.Equal(t, 1, links.calls())

	history, err := store.GetTaskHistory(ctx, domain.TaskIDLinkIndex, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
	assert.Equal(t, 3, history[0].ItemsProcessed)

	task, err := store.GetTask(ctx, domain.TaskIDLinkIndex)
	require.NoError(t, err)
	assert.Equal(t, now, task.LastSuccess)
	assert.Equal(t, now.Add(time.Hour), task.NextRun)

	skipped, err := store.GetTaskHistory(ctx, domain.TaskIDVersionSnapshot, 10)
	require.NoError(t, err)
	assert.Empty(t, skipped)
}

func TestScheduler_RunTask_UnknownTaskID(t *testing.T) {
	store := memory.NewSchedulerStore()
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), store, nil, nil)

	scheduler.runTask(context.Background(), &domain.ScheduledTask{ID: "unknown-task", Enabled: true})
	scheduler.wg.Wait()

	history, err := store.GetTaskHistory(context.Background(), "unknown-task", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestScheduler_FailedTaskRecordsError(t *testing.T) {
	store := memory.NewSchedulerStore()
	links := &countingLinkIndex{rebuildErr: assert.AnError}
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), store, nil, links)
	ctx := context.Background()

	scheduler.runTask(ctx, &domain.ScheduledTask{ID: domain.TaskIDLinkIndex, Interval: time.Hour, Enabled: true})
	scheduler.wg.Wait()

	saved, err := store.GetTask(ctx, domain.TaskIDLinkIndex)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, assert.AnError.Error(), saved.LastError)
	assert.True(t, saved.NextRun.After(saved.LastRun))
	assert.True(t, saved.LastSuccess.IsZero())

	history, err := store.GetTaskHistory(ctx, domain.TaskIDLinkIndex, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Success)
}
