package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// Ensure Plugin implements the interface.
var _ driving.Plugin = (*Plugin)(nil)

// Plugin wires the rulebook lifecycle: OnLoad loads the taxonomy and starts
// background tasks, OnUnload stops them.
type Plugin struct {
	taxonomy  driving.TaxonomyService
	scheduler driving.Scheduler

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlugin creates the lifecycle. scheduler may be nil.
func NewPlugin(taxonomy driving.TaxonomyService, scheduler driving.Scheduler) *Plugin {
	return &Plugin{
		taxonomy:  taxonomy,
		scheduler: scheduler,
	}
}

// OnLoad loads the taxonomy and starts the scheduler in the background.
// Calling it twice without OnUnload is a no-op.
func (p *Plugin) OnLoad(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done != nil {
		return nil
	}
	if err := p.taxonomy.Load(); err != nil {
		return fmt.Errorf("load taxonomy: %w", err)
	}
	if p.scheduler == nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		if err := p.scheduler.Start(runCtx); err != nil && runCtx.Err() == nil {
			log.Printf("plugin: scheduler stopped: %v", err)
		}
	}()
	return nil
}

// OnUnload stops the scheduler and waits for running tasks.
func (p *Plugin) OnUnload(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done == nil {
		return nil
	}
	err := p.scheduler.Stop()
	p.cancel()
	<-p.done

	p.cancel = nil
	p.done = nil
	if err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	return nil
}
