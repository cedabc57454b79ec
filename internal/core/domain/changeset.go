package domain

import "sort"

// ChangeSet tracks changed module identities across reload generations.
// The active generation is consumed by the reload in flight; changes that
// arrive while a reload is running accumulate in the pending generation and
// are promoted when the cycle completes. Every identity ever marked is also
// remembered so a crashed session can recognize a retry edit.
//
// ChangeSet is not synchronized; the orchestrator serializes access under
// its own mutex.
type ChangeSet struct {
	active      map[string]struct{}
	pending     map[string]struct{}
	activeFull  bool
	pendingFull bool
	seen        map[string]struct{}
}

// NewChangeSet creates an empty two-generation change set.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		active:  make(map[string]struct{}),
		pending: make(map[string]struct{}),
		seen:    make(map[string]struct{}),
	}
}

// MarkActive records a change into the active generation. full marks the
// change as requiring a full reload.
func (c *ChangeSet) MarkActive(id string, full bool) {
	c.active[id] = struct{}{}
	c.seen[id] = struct{}{}
	c.activeFull = c.activeFull || full
}

// MarkPending records a change into the pending generation while a reload
// is in flight.
func (c *ChangeSet) MarkPending(id string, full bool) {
	c.pending[id] = struct{}{}
	c.seen[id] = struct{}{}
	c.pendingFull = c.pendingFull || full
}

// Active returns the active generation's identities in sorted order.
func (c *ChangeSet) Active() []string {
	ids := make([]string, 0, len(c.active))
	for id := range c.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActiveFull reports whether the active generation requires a full reload.
func (c *ChangeSet) ActiveFull() bool {
	return c.activeFull
}

// PendingLen returns the size of the pending generation.
func (c *ChangeSet) PendingLen() int {
	return len(c.pending)
}

// Swap promotes the pending generation to active and clears pending. It is
// called exactly once per completed reload cycle.
func (c *ChangeSet) Swap() {
	c.active = c.pending
	c.activeFull = c.pendingFull
	c.pending = make(map[string]struct{})
	c.pendingFull = false
}

// Seen reports whether the identity was ever marked as changed during this
// session. A crashed session treats a re-edit of any seen path as a retry.
func (c *ChangeSet) Seen(id string) bool {
	_, ok := c.seen[id]
	return ok
}
