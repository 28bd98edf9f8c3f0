package ancore

import (
	"fmt"

	"github.com/open-control-systems/time-anchor/components/core"
	"github.com/open-control-systems/time-anchor/components/system/syscore"
)

// SystemClockSource delivers anchors captured from the local wall clock.
//
// Remarks:
//   - Only suitable when the local wall clock is synchronized by other means.
type SystemClockSource struct {
	wallClock      syscore.WallClock
	monotonicClock syscore.MonotonicClock
	deliverer      Deliverer
}

// NewSystemClockSource is an initialization of SystemClockSource.
func NewSystemClockSource(
	wallClock syscore.WallClock,
	monotonicClock syscore.MonotonicClock,
	deliverer Deliverer,
) *SystemClockSource {
	return &SystemClockSource{
		wallClock:      wallClock,
		monotonicClock: monotonicClock,
		deliverer:      deliverer,
	}
}

// Run captures and delivers a single anchor.
func (s *SystemClockSource) Run() error {
	monotonic, err := s.monotonicClock.Now()
	if err != nil {
		return fmt.Errorf("system-clock-source: failed to read monotonic clock: %w", err)
	}

	s.deliverer.Deliver(NewAnchor(s.wallClock.Now(), monotonic))

	return nil
}

// HandleError handles error from the Run() call.
func (*SystemClockSource) HandleError(err error) {
	core.LogErr.Printf("system-clock-source: %v\n", err)
}
