// Package domain contains the core types of the live-reload engine: the
// module registry, the generational change set, and the sentinel errors.
package domain

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// immutableSegments are path segments that mark third-party code. Entries
// beneath them are traversed during invalidation but never removed.
var immutableSegments = map[string]bool{
	"vendor":       true,
	"node_modules": true,
}

// ModuleEntry is one loaded unit of code. Parent is the ID of the module
// whose load caused this one to load, stored as a lookup key rather than a
// reference so the registry can be walked arena-style.
type ModuleEntry struct {
	ID     string
	Parent string
}

// Registry is the in-memory module cache: a mapping from module identity
// (absolute file path) to its entry. It is mutated only by loads (Put) and
// invalidation (Remove, RemoveChainFrom, Clear).
type Registry struct {
	mu      sync.RWMutex
	root    string
	entries map[string]*ModuleEntry
}

// NewRegistry creates an empty registry rooted at the given project root.
// Identities outside the root fall into the immutable-dependency namespace.
func NewRegistry(root string) *Registry {
	return &Registry{
		root:    filepath.Clean(root),
		entries: make(map[string]*ModuleEntry),
	}
}

// Root returns the project root the registry was created with.
func (r *Registry) Root() string {
	return r.root
}

// Get returns the entry for the given identity.
func (r *Registry) Get(id string) (*ModuleEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Has reports whether the identity is currently cached.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// Put records a loaded module. The parent is the identity of the module
// whose load pulled this one in, or the empty string for the entry point.
// The first recorded parent wins: re-loading a shared dependency through a
// different chain must not rewrite the original cause edge.
func (r *Registry) Put(id, parent string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.entries[id]; ok {
		if existing.Parent == "" && parent != "" {
			existing.Parent = parent
		}
		return
	}
	r.entries[id] = &ModuleEntry{ID: id, Parent: parent}
}

// Remove deletes a single entry. Immutable entries are left in place.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isImmutable(id) {
		return
	}
	delete(r.entries, id)
}

// RemoveChainFrom walks the parent chain starting at id (self, parent,
// parent's parent, ...) and removes every visited entry. The walk stops at
// an entry with no parent, a missing entry, or an already visited identity
// (cycle guard). Immutable entries are traversed but never removed. The
// removed identities are returned in walk order.
func (r *Registry) RemoveChainFrom(id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	visited := make(map[string]bool)

	for cur := id; cur != "" && !visited[cur]; {
		visited[cur] = true
		entry, ok := r.entries[cur]
		if !ok {
			break
		}
		if !r.isImmutable(cur) {
			delete(r.entries, cur)
			removed = append(removed, cur)
		}
		cur = entry.Parent
	}
	return removed
}

// Clear removes every entry outside the immutable-dependency namespace.
// This is the full-reload invalidation.
func (r *Registry) Clear() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id := range r.entries {
		if r.isImmutable(id) {
			continue
		}
		delete(r.entries, id)
		removed = append(removed, id)
	}
	sort.Strings(removed)
	return removed
}

// Len returns the number of cached entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// IDs returns all cached identities in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsImmutable reports whether the identity falls into the immutable
// dependency namespace: outside the project root, or beneath a vendored
// dependency directory.
func (r *Registry) IsImmutable(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isImmutable(id)
}

func (r *Registry) isImmutable(id string) bool {
	rel, err := filepath.Rel(r.root, id)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}
	for _, seg := range strings.Split(rel, string(filepath.Separator)) {
		if immutableSegments[seg] {
			return true
		}
	}
	return false
}
