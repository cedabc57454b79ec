package ports

import (
	"context"

	"go.trai.ch/revive/internal/core/domain"
)

// EntryHandle is the currently loaded program object. It is replaced
// wholesale on every reload. Both hooks are optional and nil when the
// program does not export them.
type EntryHandle struct {
	// Path is the resolved entry file the handle was loaded from.
	Path string
	// Start is the program's start lifecycle hook, invoked after a
	// successful load. The call blocks until the hook settles.
	Start func(ctx context.Context) error
	// OnBeforeRestart is invoked on the previous handle before a reload,
	// allowing graceful teardown of timers and open handles.
	OnBeforeRestart func(ctx context.Context) error
}

// Loader defines the interface for loading the program entry point.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type Loader interface {
	// Resolve normalizes the configured entry file to a concrete source
	// file. A directory entry is resolved through its package manifest's
	// main field. Resolution failures are configuration errors.
	Resolve(entry string) (string, error)

	// Load loads the entry module from disk, executing it in-process, and
	// records every loaded unit into the registry with its cause edge.
	// Load failures leave the registry as populated as the partial load got.
	Load(ctx context.Context, entry string, reg *domain.Registry) (*EntryHandle, error)
}
