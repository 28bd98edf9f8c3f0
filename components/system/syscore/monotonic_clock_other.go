//go:build !linux

package syscore

// NewMonotonicClock returns the most precise monotonic clock for the platform.
func NewMonotonicClock() MonotonicClock {
	return &UptimeClock{}
}
