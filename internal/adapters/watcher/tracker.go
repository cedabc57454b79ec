package watcher

import (
	"os"
	"sync"
	"unique"

	"github.com/cespare/xxhash/v2"
)

// Tracker remembers a content hash per path so editor save storms that
// rewrite identical bytes do not trigger reloads.
type Tracker struct {
	mu     sync.Mutex
	hashes map[unique.Handle[string]]uint64
}

// NewTracker creates an empty content tracker.
func NewTracker() *Tracker {
	return &Tracker{hashes: make(map[unique.Handle[string]]uint64)}
}

// Changed reports whether the file content at path differs from the last
// observation and records the new hash. A path that cannot be read (for
// example because it was removed) always counts as changed and is dropped
// from the tracker.
func (t *Tracker) Changed(path string) bool {
	data, err := os.ReadFile(path)

	t.mu.Lock()
	defer t.mu.Unlock()

	handle := unique.Make(path)
	if err != nil {
		delete(t.hashes, handle)
		return true
	}

	sum := xxhash.Sum64(data)
	if prev, ok := t.hashes[handle]; ok && prev == sum {
		return false
	}
	t.hashes[handle] = sum
	return true
}

// Forget drops the recorded hash for a path.
func (t *Tracker) Forget(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.hashes, unique.Make(path))
}
