package reload_test

import (
	"context"
	"sync"
)

// nopLogger satisfies ports.Logger for tests that don't assert on logging.
type nopLogger struct{}

func (nopLogger) Debug(string)    {}
func (nopLogger) Info(string)     {}
func (nopLogger) Warn(string)     {}
func (nopLogger) Error(error)     {}
func (nopLogger) SetVerbose(bool) {}

// fakeRunner is a controllable reload.Runner. If block is non-nil each Run
// call waits on it before returning; errs supplies per-call results.
type fakeRunner struct {
	mu    sync.Mutex
	runs  int
	block chan struct{}
	errs  []error
}

func (f *fakeRunner) Run(context.Context) error {
	f.mu.Lock()
	call := f.runs
	f.runs++
	var err error
	if call < len(f.errs) {
		err = f.errs[call]
	}
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return err
}

func (f *fakeRunner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs
}

// fakeInvalidator records every invalidation request.
type fakeInvalidator struct {
	mu    sync.Mutex
	calls []invalidation
}

type invalidation struct {
	changed []string
	full    bool
}

func (f *fakeInvalidator) Invalidate(changed []string, full bool) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, invalidation{changed: changed, full: full})
	return changed
}

func (f *fakeInvalidator) recorded() []invalidation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]invalidation, len(f.calls))
	copy(out, f.calls)
	return out
}
