package domain

import "go.trai.ch/zerr"

var (
	// ErrEntryFileRequired is returned when no entry file is given for a watch session.
	ErrEntryFileRequired = zerr.New("entry file is required")

	// ErrEntryNotFound is returned when the resolved entry file does not exist.
	ErrEntryNotFound = zerr.New("entry file not found")

	// ErrInvalidTargets is returned when the watch target list cannot be normalized.
	ErrInvalidTargets = zerr.New("invalid watch targets")

	// ErrTargetNotFound is returned when a watch target path does not exist.
	ErrTargetNotFound = zerr.New("watch target not found")

	// ErrManifestReadFailed is returned when a directory entry's package manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read package manifest")

	// ErrManifestMainMissing is returned when the package manifest declares no usable main file.
	ErrManifestMainMissing = zerr.New("package manifest has no usable main file")

	// ErrEntryLoadFailed is returned when the entry module fails to load or execute.
	ErrEntryLoadFailed = zerr.New("failed to load entry module")

	// ErrHookFailed is returned when a lifecycle hook of the loaded program fails.
	ErrHookFailed = zerr.New("lifecycle hook failed")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started on a target.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")
)
