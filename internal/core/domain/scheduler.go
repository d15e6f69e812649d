package domain

import "time"

// Built-in background tasks.
const (
	// TaskIDVersionSnapshot snapshots every tracked vault document.
	TaskIDVersionSnapshot = "version-snapshot"

	// TaskIDLinkIndex rebuilds the vault link index.
	TaskIDLinkIndex = "link-index"
)

// BuiltinTasks lists the task IDs the scheduler knows how to run, in
// the order they are registered.
var BuiltinTasks = []string{TaskIDVersionSnapshot, TaskIDLinkIndex}

// TaskName returns the display name of a built-in task, or the ID itself.
func TaskName(id string) string {
	switch id {
	case TaskIDVersionSnapshot:
		return "Version Snapshot"
	case TaskIDLinkIndex:
		return "Link Index"
	default:
		return id
	}
}

// ScheduledTask is the persisted state of one recurring task.
// Zero times mean "never".
type ScheduledTask struct {
	ID          string
	Name        string
	Interval    time.Duration
	LastRun     time.Time
	NextRun     time.Time
	LastSuccess time.Time
	LastError   string
	Enabled     bool
}

// Due reports whether an enabled task should run at now.
// A task that was never planned is due immediately.
func (t ScheduledTask) Due(now time.Time) bool {
	return t.Enabled && !t.NextRun.After(now)
}

// Reschedule records a finished run that started at started and ended at
// ended. A nil err also updates LastSuccess.
func (t *ScheduledTask) Reschedule(started, ended time.Time, err error) {
	t.LastRun = started
	t.NextRun = ended.Add(t.Interval)
	if err != nil {
		t.LastError = err.Error()
		return
	}
	t.LastError = ""
	t.LastSuccess = ended
}

// TaskResult is one run in a task's history.
type TaskResult struct {
	TaskID    string
	StartedAt time.Time
	EndedAt   time.Time
	Success   bool
	Error     string

	// ItemsProcessed counts snapshots written or documents indexed.
	ItemsProcessed int
}

// SchedulerConfig is the [scheduler] section of the config file.
type SchedulerConfig struct {
	// Enabled is the master switch.
	Enabled     bool
	TaskConfigs map[string]TaskConfig
}

// TaskConfig configures one task.
type TaskConfig struct {
	Enabled  bool
	Interval time.Duration
}

// GetTaskConfig returns the configuration of task id, or a zero
// TaskConfig when it is not configured.
func (c *SchedulerConfig) GetTaskConfig(id string) TaskConfig {
	if c.TaskConfigs == nil {
		return TaskConfig{}
	}
	return c.TaskConfigs[id]
}

// DefaultSchedulerConfig refreshes the link index every 15 minutes.
// Hourly version snapshots are opt-in.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled: true,
		TaskConfigs: map[string]TaskConfig{
			TaskIDVersionSnapshot: {Enabled: false, Interval: time.Hour},
			TaskIDLinkIndex:       {Enabled: true, Interval: 15 * time.Minute},
		},
	}
}
