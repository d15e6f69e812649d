package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

const (
	// checkInterval is how often the loop looks for due tasks.
	checkInterval = time.Minute

	// historyKeep is the number of results kept per task.
	historyKeep = 100
)

// taskFunc runs one task and returns the number of items it handled.
type taskFunc func(ctx context.Context) (int, error)

// Scheduler runs the vault's background tasks: periodic snapshots of
// tracked documents and link index refreshes. Task state survives restarts
// through the SchedulerStore.
type Scheduler struct {
	config   domain.SchedulerConfig
	store    driven.SchedulerStore
	versions driving.VersionService
	links    driving.LinkIndexService
	runners  map[string]taskFunc
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler.
// versions and links may be nil; their tasks then do nothing.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	versions driving.VersionService,
	links driving.LinkIndexService,
) *Scheduler {
	s := &Scheduler{
		config:   config,
		store:    store,
		versions: versions,
		links:    links,
		now:      time.Now,
	}
	s.runners = map[string]taskFunc{
		domain.TaskIDVersionSnapshot: s.runVersionSnapshot,
		domain.TaskIDLinkIndex:       s.runLinkIndex,
	}
	return s
}

// Start runs the scheduler loop until ctx is cancelled or Stop is called.
// It returns at once when the scheduler is disabled or already running.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.stopCh == stopCh {
			s.running = false
		}
		s.mu.Unlock()
	}()

	if err := s.initialiseTasks(ctx); err != nil {
		log.Printf("scheduler: failed to initialise tasks: %v", err)
	}
	return s.run(ctx, stopCh)
}

// Stop ends the loop and waits for running tasks.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// initialiseTasks registers every built-in task that has an interval.
func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	for _, id := range domain.BuiltinTasks {
		cfg := s.config.GetTaskConfig(id)
		if cfg.Interval <= 0 {
			continue
		}
		if err := s.ensureTask(ctx, id, cfg); err != nil {
			return err
		}
	}
	return nil
}

// ensureTask creates a task, or applies a changed configuration to it.
// A changed interval replans the next run from now.
func (s *Scheduler) ensureTask(ctx context.Context, id string, cfg domain.TaskConfig) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	now := s.now()
	switch {
	case task == nil:
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     domain.TaskName(id),
			Interval: cfg.Interval,
			NextRun:  now.Add(cfg.Interval),
		}
	case task.Interval != cfg.Interval:
		task.Interval = cfg.Interval
		task.NextRun = now.Add(cfg.Interval)
	}
	task.Enabled = cfg.Enabled

	return s.store.SaveTask(ctx, task)
}

func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}) error {
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks starts every task that is due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		log.Printf("scheduler: failed to list tasks: %v", err)
		return
	}

	now := s.now()
	for i := range tasks {
		if tasks[i].Due(now) {
			s.runTask(ctx, &tasks[i])
		}
	}
}

// runTask runs task in the background, then saves its new state and
// records the result.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	runner, ok := s.runners[task.ID]
	if !ok {
		log.Printf("scheduler: unknown task ID: %s", task.ID)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		started := s.now()
		n, err := runner(ctx)
		ended := s.now()

		task.Reschedule(started, ended, err)
		result := &domain.TaskResult{
			TaskID:         task.ID,
			StartedAt:      started,
			EndedAt:        ended,
			Success:        err == nil,
			ItemsProcessed: n,
		}
		if err != nil {
			result.Error = err.Error()
			log.Printf("scheduler: %s failed: %v", task.Name, err)
		}

		if err := s.store.SaveTask(ctx, task); err != nil {
			log.Printf("scheduler: failed to save task %s: %v", task.ID, err)
		}
		if err := s.store.RecordResult(ctx, result); err != nil {
			log.Printf("scheduler: failed to record result for %s: %v", task.ID, err)
		}
		if err := s.store.PruneHistory(ctx, historyKeep); err != nil {
			log.Printf("scheduler: failed to prune history: %v", err)
		}
	}()
}

// runVersionSnapshot snapshots every tracked document.
func (s *Scheduler) runVersionSnapshot(ctx context.Context) (int, error) {
	if s.versions == nil {
		return 0, nil
	}
	return s.versions.SnapshotTracked(ctx, s.now().UnixMilli())
}

// runLinkIndex rebuilds the vault link index.
func (s *Scheduler) runLinkIndex(ctx context.Context) (int, error) {
	if s.links == nil {
		return 0, nil
	}
	stats, err := s.links.Rebuild(ctx)
	return stats.Documents, err
}
