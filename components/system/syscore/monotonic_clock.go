package syscore

import "time"

// MonotonicClock to read the time elapsed since the device boot.
//
// Remarks:
//   - The reading never moves backward within a boot session.
//   - The reading restarts from a small value after reboot.
//   - The reading isn't affected by the wall clock adjustments.
type MonotonicClock interface {
	// Now returns time elapsed since boot.
	Now() (time.Duration, error)
}
