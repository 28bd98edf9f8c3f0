package syscore

import "time"

// WallClock to read the local wall clock time.
type WallClock interface {
	// Now returns the current local time.
	Now() time.Time
}

// LocalWallClock is a wrapper around the standard time package.
type LocalWallClock struct{}

// Now returns the current local time.
func (*LocalWallClock) Now() time.Time {
	return time.Now()
}
