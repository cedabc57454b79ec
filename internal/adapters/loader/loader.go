// Package loader executes program entry files in-process with the yaegi
// interpreter, recording every loaded unit into the module registry.
package loader

import (
	"context"
	"os"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.trai.ch/revive/internal/core/domain"
	"go.trai.ch/revive/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Loader = (*Loader)(nil)

// Hook names the loaded program may export.
const (
	startHook         = "Start"
	beforeRestartHook = "OnBeforeRestart"
)

// Loader implements ports.Loader using yaegi. Each load runs on a fresh
// interpreter; the registry carries the cache state between loads.
type Loader struct {
	root   string
	logger ports.Logger
}

// NewLoader creates a loader rooted at the project root.
func NewLoader(root string, logger ports.Logger) *Loader {
	return &Loader{root: root, logger: logger}
}

// Load loads the entry module from disk and executes it. The registry is
// populated with the entry and every source file its import graph reaches,
// each with a parent edge to its importer. Exported Start and
// OnBeforeRestart functions become the handle's lifecycle hooks.
func (l *Loader) Load(_ context.Context, entry string, reg *domain.Registry) (*ports.EntryHandle, error) {
	resolved, err := l.Resolve(entry)
	if err != nil {
		return nil, err
	}

	l.recordDeps(resolved, reg)

	i := interp.New(interp.Options{
		GoPath: os.Getenv("GOPATH"),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, zerr.Wrap(err, domain.ErrEntryLoadFailed.Error())
	}

	if _, err := i.EvalPath(resolved); err != nil {
		return nil, zerr.Wrap(err, domain.ErrEntryLoadFailed.Error())
	}

	pkg, err := packageName(resolved)
	if err != nil {
		pkg = "main"
	}

	return &ports.EntryHandle{
		Path:            resolved,
		Start:           lookupHook(i, pkg, startHook),
		OnBeforeRestart: lookupHook(i, pkg, beforeRestartHook),
	}, nil
}

// lookupHook returns the named exported hook of the loaded program, or nil
// when the program does not define one with a supported signature. After
// EvalPath the interpreter's scope is the main package itself, so main
// hooks resolve as bare identifiers; only other packages need the
// qualified form.
func lookupHook(i *interp.Interpreter, pkg, name string) func(ctx context.Context) error {
	expr := name
	if pkg != "main" {
		expr = pkg + "." + name
	}
	v, err := i.Eval(expr)
	if err != nil || !v.IsValid() {
		return nil
	}

	switch fn := v.Interface().(type) {
	case func() error:
		return func(context.Context) error { return fn() }
	case func():
		return func(context.Context) error {
			fn()
			return nil
		}
	default:
		return nil
	}
}
