package ancore

import "sync"

// Holder owns zero or one anchor.
//
// Remarks:
//   - Can be used by multiple goroutines.
//   - The anchor is replaced as a whole, readers never observe a mix of two anchors.
//   - Anchor is read much more often than replaced, rw-lock is used to reduce contention.
type Holder struct {
	mu     sync.RWMutex
	anchor Anchor
	ok     bool
}

// Replace sets the owned anchor, the last replace wins.
func (h *Holder) Replace(anchor Anchor) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.anchor = anchor
	h.ok = true
}

// ReplaceIfEmpty sets the owned anchor only if no anchor has been set yet.
//
// Returns true if the anchor was set.
func (h *Holder) ReplaceIfEmpty(anchor Anchor) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ok {
		return false
	}

	h.anchor = anchor
	h.ok = true

	return true
}

// Snapshot returns a copy of the owned anchor, false if not set yet.
func (h *Holder) Snapshot() (Anchor, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.anchor, h.ok
}
