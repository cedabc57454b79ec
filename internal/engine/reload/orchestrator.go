// Package reload implements the live-reload engine: change classification,
// cache invalidation, and the single-flight restart state machine.
package reload

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/revive/internal/core/domain"
	"go.trai.ch/revive/internal/core/ports"
)

// State is the restart state machine's current position.
type State uint8

const (
	// StateIdle means no reload is in flight.
	StateIdle State = iota
	// StateStarting means a reload was triggered and stale cache entries
	// are being invalidated.
	StateStarting
	// StateRunning means the entry runner is executing.
	StateRunning
	// StateCrashed means the last load failed; the session keeps watching
	// and any previously seen change retries the load.
	StateCrashed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Change is one qualifying change submitted by the classifier. Full marks
// an entry-point change requiring broad invalidation.
type Change struct {
	Path string
	Full bool
}

// Invalidator removes stale registry entries for a cycle's change set.
type Invalidator interface {
	Invalidate(changed []string, full bool) []string
}

// Runner executes one entry load, including lifecycle hooks.
type Runner interface {
	Run(ctx context.Context) error
}

// Orchestrator serializes reload cycles. At most one cycle is in flight at
// any instant; qualifying changes that arrive mid-cycle accumulate in the
// pending generation and trigger at most one follow-up cycle. The
// restarting flag is the mutual-exclusion token; the mutex only guards the
// flag and change-set bookkeeping, never spans a cycle.
type Orchestrator struct {
	mu          sync.Mutex
	state       State
	crashed     bool
	restarting  bool
	needRestart bool
	changes     *domain.ChangeSet
	invalidator Invalidator
	runner      Runner
	logger      ports.Logger
	tracer      trace.Tracer
	wg          sync.WaitGroup
	onCycleEnd  func(err error)
}

// NewOrchestrator creates an idle orchestrator.
func NewOrchestrator(invalidator Invalidator, runner Runner, logger ports.Logger) *Orchestrator {
	return &Orchestrator{
		changes:     domain.NewChangeSet(),
		invalidator: invalidator,
		runner:      runner,
		logger:      logger,
		tracer:      otel.Tracer("revive/reload"),
	}
}

// WithCycleCallback registers a callback invoked after every completed
// cycle with the cycle's load error. Used by tests and the session loop.
func (o *Orchestrator) WithCycleCallback(fn func(err error)) *Orchestrator {
	o.onCycleEnd = fn
	return o
}

// Bootstrap runs the initial load. It behaves like a reload cycle with an
// empty change set so crash handling is uniform from the first load on.
func (o *Orchestrator) Bootstrap(ctx context.Context) {
	o.mu.Lock()
	if o.restarting {
		o.mu.Unlock()
		return
	}
	o.restarting = true
	o.state = StateStarting
	o.mu.Unlock()

	o.spawn(ctx)
}

// Submit records a qualifying change. If no cycle is in flight one starts
// immediately; otherwise the change lands in the pending generation and
// marks that exactly one follow-up cycle must run.
func (o *Orchestrator) Submit(ctx context.Context, ch Change) {
	o.mu.Lock()
	if o.restarting {
		o.changes.MarkPending(ch.Path, ch.Full)
		o.needRestart = true
		o.mu.Unlock()
		return
	}
	o.changes.MarkActive(ch.Path, ch.Full)
	o.restarting = true
	o.state = StateStarting
	o.mu.Unlock()

	o.spawn(ctx)
}

// State returns the machine's current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Crashed reports whether the last load failed.
func (o *Orchestrator) Crashed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.crashed
}

// Recorded reports whether the path was ever marked as changed during this
// session.
func (o *Orchestrator) Recorded(path string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.changes.Seen(path)
}

// Wait blocks until the in-flight cycle chain has drained.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) spawn(ctx context.Context) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.loop(ctx)
	}()
}

// loop runs reload cycles until no follow-up is pending. It executes on a
// dedicated goroutine; there is never more than one loop running.
func (o *Orchestrator) loop(ctx context.Context) {
	for {
		o.mu.Lock()
		changed := o.changes.Active()
		full := o.changes.ActiveFull()
		o.state = StateStarting
		o.mu.Unlock()

		if len(changed) > 0 {
			o.logger.Info(fmt.Sprintf("restarting (%d change(s))", len(changed)))
		}

		err := o.cycle(ctx, changed, full)

		o.mu.Lock()
		o.changes.Swap()
		o.crashed = err != nil
		if err != nil {
			o.state = StateCrashed
		} else {
			o.state = StateIdle
		}
		again := o.needRestart
		o.needRestart = false
		if !again {
			o.restarting = false
		}
		cb := o.onCycleEnd
		o.mu.Unlock()

		if err != nil {
			o.logger.Error(err)
			o.logger.Warn("program crashed, watching for changes to retry")
		}
		if cb != nil {
			cb(err)
		}
		if !again {
			return
		}
	}
}

// cycle performs one invalidate-then-run pass over the captured change set.
// Once started it runs to completion; there is no cancellation and no hook
// timeout.
func (o *Orchestrator) cycle(ctx context.Context, changed []string, full bool) error {
	ctx, span := o.tracer.Start(ctx, "reload.cycle", trace.WithAttributes(
		attribute.Bool("full", full),
		attribute.Int("changes", len(changed)),
	))
	defer span.End()

	removed := o.invalidator.Invalidate(changed, full)
	if len(removed) > 0 {
		o.logger.Debug(fmt.Sprintf("invalidated %d cache entr(ies)", len(removed)))
	}

	o.mu.Lock()
	o.state = StateRunning
	o.mu.Unlock()

	if err := o.runner.Run(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "entry load failed")
		return err
	}
	return nil
}
