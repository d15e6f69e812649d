package driving

import "context"

// Scheduler runs version snapshots and link index refreshes in the
// background while the TUI or MCP server is up.
type Scheduler interface {
	// Start blocks until ctx is done or Stop is called. It returns nil at
	// once when scheduling is disabled.
	Start(ctx context.Context) error

	// Stop waits for in-flight tasks.
	Stop() error
}
