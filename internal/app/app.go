// Package app implements the application layer: it wires the watcher,
// classifier, and restart orchestrator into a watch session.
package app

import (
	"context"
	"strings"
	"time"

	"go.trai.ch/revive/internal/adapters/telemetry"
	"go.trai.ch/revive/internal/adapters/watcher"
	"go.trai.ch/revive/internal/core/domain"
	"go.trai.ch/revive/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	watcher ports.Watcher
	loader  ports.Loader
	logger  ports.Logger
	window  time.Duration
}

// New creates a new App instance.
func New(w ports.Watcher, l ports.Loader, log ports.Logger) *App {
	return &App{
		watcher: w,
		loader:  l,
		logger:  log,
		window:  watcher.DefaultStabilityWindow,
	}
}

// WithStabilityWindow overrides the debounce window. Used by tests.
func (a *App) WithStabilityWindow(d time.Duration) *App {
	a.window = d
	return a
}

// Watch runs a watch session until the context is canceled. Configuration
// errors are returned before the session begins; every runtime failure
// (watcher error, load failure, hook failure) is isolated per reload cycle
// and keeps the session alive.
func (a *App) Watch(ctx context.Context, cfg Config) error {
	if err := cfg.Normalize(); err != nil {
		return err
	}
	a.logger.SetVerbose(cfg.Verbose)

	entry, err := a.loader.Resolve(cfg.EntryFile)
	if err != nil {
		return err
	}

	shutdownTelemetry := telemetry.Setup(a.logger)
	defer func() { _ = shutdownTelemetry(context.WithoutCancel(ctx)) }()

	registry := domain.NewRegistry(cfg.CWD)
	runner := NewSessionRunner(a.loader, registry, a.logger, entry)
	orch := runner.Orchestrator()
	classifier := runner.Classifier()

	tracker := watcher.NewTracker()
	debouncer := watcher.NewDebouncer(a.window, func(paths []string) {
		for _, path := range paths {
			if !tracker.Changed(path) {
				continue
			}
			classifier.Handle(ctx, path)
		}
	})

	if err := a.watcher.Start(ctx, cfg.Targets); err != nil {
		return zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}
	defer func() { _ = a.watcher.Stop() }()

	// No change events are dispatched before the initial scan completes.
	select {
	case <-a.watcher.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}
	a.logger.Info("watching " + strings.Join(cfg.Targets, ", "))
	a.logger.Debug("entry point: " + entry)

	orch.Bootstrap(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for event := range a.watcher.Events() {
			select {
			case <-gctx.Done():
				return nil
			default:
			}
			// A removed or renamed-away file must count as changed even if
			// it reappears with identical content inside the window.
			if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
				tracker.Forget(event.Path)
			}
			debouncer.Add(event.Path)
		}
		return nil
	})

	err = g.Wait()
	if ctx.Err() == nil {
		// The event stream ended without cancellation: deliver what is
		// still sitting in the window.
		debouncer.Flush()
	}
	orch.Wait()
	if err == nil && ctx.Err() != nil {
		return nil
	}
	return err
}
