package ancore

import (
	"fmt"
	"time"
)

// Anchor pairs a wall clock instant with the monotonic clock reading taken at the same moment.
//
// Remarks:
//   - Anchor is immutable, the zero value is not a valid anchor.
type Anchor struct {
	wallClock time.Time
	monotonic time.Duration
}

// NewAnchor is an initialization of Anchor.
//
// Parameters:
//   - wallClock - wall clock instant, the Go monotonic reading, if any, is stripped.
//   - monotonic - time elapsed since boot when wallClock was captured.
func NewAnchor(wallClock time.Time, monotonic time.Duration) Anchor {
	return Anchor{
		wallClock: wallClock.Round(0),
		monotonic: monotonic,
	}
}

// WallClock returns the anchored wall clock instant.
func (a Anchor) WallClock() time.Time {
	return a.wallClock
}

// Monotonic returns the monotonic clock reading taken with the wall clock instant.
func (a Anchor) Monotonic() time.Duration {
	return a.monotonic
}

// Extrapolate estimates the wall clock time for the current monotonic clock reading.
func (a Anchor) Extrapolate(currentMonotonic time.Duration) time.Time {
	return a.wallClock.Add(currentMonotonic - a.monotonic)
}

// Equal reports whether both anchors denote the same instants.
func (a Anchor) Equal(other Anchor) bool {
	return a.wallClock.Equal(other.wallClock) && a.monotonic == other.monotonic
}

// String returns a human readable anchor representation.
func (a Anchor) String() string {
	return fmt.Sprintf("wall=%s monotonic=%s",
		a.wallClock.UTC().Format(time.RFC3339Nano), a.monotonic)
}
