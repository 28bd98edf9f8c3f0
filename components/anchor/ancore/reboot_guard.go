package ancore

import (
	"time"

	"github.com/open-control-systems/time-anchor/components/core"
)

// RebootGuard discards records persisted during a previous boot session.
//
// A record whose monotonic reading exceeds the current one can't belong to this
// boot session, since the monotonic clock only moves backward on reboot. Wall
// clock is not consulted, it can be adjusted externally at any time.
type RebootGuard struct {
	clearer Clearer
}

// NewRebootGuard is an initialization of RebootGuard.
//
// Parameters:
//   - clearer to remove the stale record.
func NewRebootGuard(clearer Clearer) *RebootGuard {
	return &RebootGuard{
		clearer: clearer,
	}
}

// Validate returns the anchor reconstructed from the record if it is still valid.
//
// Remarks:
//   - Stale record is removed from the store, false is returned.
//   - Equal monotonic readings are valid.
func (g *RebootGuard) Validate(record Record, currentMonotonic time.Duration) (Anchor, bool) {
	anchor := record.Anchor()

	if anchor.Monotonic() > currentMonotonic {
		core.LogWrn.Printf("reboot-guard: stale record: recorded=%s current=%s\n",
			anchor.Monotonic(), currentMonotonic)

		if err := g.clearer.Clear(); err != nil {
			core.LogErr.Printf("reboot-guard: failed to clear stale record: %v\n", err)
		}

		return Anchor{}, false
	}

	return anchor, true
}
