package reload

import (
	"context"
	"sync"

	"go.trai.ch/revive/internal/core/domain"
	"go.trai.ch/revive/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ Runner = (*EntryRunner)(nil)

// EntryRunner loads the entry module and drives its lifecycle hooks. It
// owns the current EntryHandle, which is replaced wholesale on every
// reload. Hook failures are reported but never abort the cycle; load
// failures are returned so the orchestrator can enter the crashed state.
type EntryRunner struct {
	mu       sync.Mutex
	loader   ports.Loader
	registry *domain.Registry
	logger   ports.Logger
	entry    string
	handle   *ports.EntryHandle
}

// NewRunner creates a runner for the given resolved entry file.
func NewRunner(loader ports.Loader, registry *domain.Registry, logger ports.Logger, entry string) *EntryRunner {
	return &EntryRunner{
		loader:   loader,
		registry: registry,
		logger:   logger,
		entry:    entry,
	}
}

// Run executes one load. Before a reload (not the first load) the previous
// handle's OnBeforeRestart hook runs to completion, allowing graceful
// teardown of the old instance. Hooks have no timeout; a hanging hook
// stalls all subsequent reloads.
func (r *EntryRunner) Run(ctx context.Context) error {
	r.mu.Lock()
	prev := r.handle
	r.mu.Unlock()

	if prev != nil && prev.OnBeforeRestart != nil {
		if err := prev.OnBeforeRestart(ctx); err != nil {
			r.logger.Error(zerr.Wrap(err, domain.ErrHookFailed.Error()))
		}
	}

	handle, err := r.loader.Load(ctx, r.entry, r.registry)
	if err != nil {
		r.mu.Lock()
		r.handle = nil
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	r.handle = handle
	r.mu.Unlock()
	r.logger.Debug("entry loaded: " + handle.Path)

	if handle.Start != nil {
		if err := handle.Start(ctx); err != nil {
			r.logger.Error(zerr.Wrap(err, domain.ErrHookFailed.Error()))
		}
	}
	return nil
}

// Handle returns the currently loaded program handle, nil when the last
// load failed or no load has happened yet.
func (r *EntryRunner) Handle() *ports.EntryHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle
}
