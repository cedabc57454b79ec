package reload_test

import (
	"context"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/revive/internal/engine/reload"
	"go.trai.ch/zerr"
)

func TestOrchestrator_Bootstrap(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := &fakeRunner{}
		inv := &fakeInvalidator{}
		o := reload.NewOrchestrator(inv, runner, nopLogger{})

		o.Bootstrap(context.Background())
		o.Wait()

		assert.Equal(t, 1, runner.calls())
		assert.Equal(t, reload.StateIdle, o.State())
		assert.False(t, o.Crashed())

		// The initial load invalidates nothing.
		calls := inv.recorded()
		require.Len(t, calls, 1)
		assert.Empty(t, calls[0].changed)
		assert.False(t, calls[0].full)
	})
}

func TestOrchestrator_SingleFlight(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		release := make(chan struct{})
		runner := &fakeRunner{block: release}
		o := reload.NewOrchestrator(&fakeInvalidator{}, runner, nopLogger{})
		ctx := context.Background()

		o.Submit(ctx, reload.Change{Path: "/project/b.go"})
		synctest.Wait()
		require.Equal(t, reload.StateRunning, o.State())

		// A burst of changes lands while the first reload is in flight.
		o.Submit(ctx, reload.Change{Path: "/project/b.go"})
		o.Submit(ctx, reload.Change{Path: "/project/b.go"})
		o.Submit(ctx, reload.Change{Path: "/project/a.go"})

		close(release)
		o.Wait()

		// Exactly one follow-up cycle, never one per event.
		assert.Equal(t, 2, runner.calls())
		assert.Equal(t, reload.StateIdle, o.State())
	})
}

func TestOrchestrator_NoFollowUpWithoutPendingChanges(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := &fakeRunner{}
		o := reload.NewOrchestrator(&fakeInvalidator{}, runner, nopLogger{})

		o.Submit(context.Background(), reload.Change{Path: "/project/a.go"})
		o.Wait()

		assert.Equal(t, 1, runner.calls())
	})
}

func TestOrchestrator_CrashAndRetry(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		loadErr := zerr.New("syntax error")
		runner := &fakeRunner{errs: []error{loadErr, nil}}
		o := reload.NewOrchestrator(&fakeInvalidator{}, runner, nopLogger{})
		ctx := context.Background()

		var cycleErrs []error
		o.WithCycleCallback(func(err error) { cycleErrs = append(cycleErrs, err) })

		o.Bootstrap(ctx)
		o.Wait()

		// The session stays alive in the crashed state.
		assert.True(t, o.Crashed())
		assert.Equal(t, reload.StateCrashed, o.State())

		// A further change re-attempts the load and recovers.
		o.Submit(ctx, reload.Change{Path: "/project/entry.go"})
		o.Wait()

		assert.False(t, o.Crashed())
		assert.Equal(t, reload.StateIdle, o.State())
		require.Len(t, cycleErrs, 2)
		assert.ErrorIs(t, cycleErrs[0], loadErr)
		assert.NoError(t, cycleErrs[1])
	})
}

func TestOrchestrator_PendingFullFlagCarriesOver(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		release := make(chan struct{})
		runner := &fakeRunner{block: release}
		inv := &fakeInvalidator{}
		o := reload.NewOrchestrator(inv, runner, nopLogger{})
		ctx := context.Background()

		o.Submit(ctx, reload.Change{Path: "/project/a.go"})
		synctest.Wait()

		// The entry point changes while the partial reload runs.
		o.Submit(ctx, reload.Change{Path: "/project/entry.go", Full: true})

		close(release)
		o.Wait()

		calls := inv.recorded()
		require.Len(t, calls, 2)
		assert.Equal(t, []string{"/project/a.go"}, calls[0].changed)
		assert.False(t, calls[0].full)
		assert.Equal(t, []string{"/project/entry.go"}, calls[1].changed)
		assert.True(t, calls[1].full)
	})
}

func TestOrchestrator_Recorded(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		runner := &fakeRunner{}
		o := reload.NewOrchestrator(&fakeInvalidator{}, runner, nopLogger{})

		o.Submit(context.Background(), reload.Change{Path: "/project/a.go"})
		o.Wait()

		assert.True(t, o.Recorded("/project/a.go"))
		assert.False(t, o.Recorded("/project/b.go"))
	})
}

func TestOrchestrator_BootstrapIsIdempotentWhileRunning(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		release := make(chan struct{})
		runner := &fakeRunner{block: release}
		o := reload.NewOrchestrator(&fakeInvalidator{}, runner, nopLogger{})
		ctx := context.Background()

		o.Bootstrap(ctx)
		synctest.Wait()
		o.Bootstrap(ctx)

		close(release)
		o.Wait()

		assert.Equal(t, 1, runner.calls())
	})
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state reload.State
		want  string
	}{
		{reload.StateIdle, "idle"},
		{reload.StateStarting, "starting"},
		{reload.StateRunning, "running"},
		{reload.StateCrashed, "crashed"},
		{reload.State(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
