package driving

import "context"

// Plugin is the lifecycle a host drives.
type Plugin interface {
	// OnLoad loads settings and the taxonomy and starts background tasks.
	OnLoad(ctx context.Context) error

	// OnUnload stops background tasks.
	OnUnload(ctx context.Context) error
}
