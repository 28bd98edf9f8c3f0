//go:build linux

package syscore

import (
	"time"

	"golang.org/x/sys/unix"
)

// BoottimeClock reads CLOCK_BOOTTIME.
//
// Remarks:
//   - Unlike CLOCK_MONOTONIC, time spent in suspend is included.
type BoottimeClock struct{}

// Now returns time elapsed since boot with nanosecond resolution.
func (*BoottimeClock) Now() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		return 0, err
	}

	return time.Duration(ts.Nano()), nil
}

// NewMonotonicClock returns the most precise monotonic clock for the platform.
func NewMonotonicClock() MonotonicClock {
	return &BoottimeClock{}
}
