package ancore

import (
	"errors"
	"fmt"
	"time"

	"github.com/open-control-systems/time-anchor/components/core"
	"github.com/open-control-systems/time-anchor/components/status"
	"github.com/open-control-systems/time-anchor/components/system/syscore"
)

// TimeSource estimates the current wall clock time without network access.
//
// Remarks:
//   - Can be used by multiple goroutines.
//   - The live anchor always takes precedence over the persisted one.
type TimeSource struct {
	clock     syscore.MonotonicClock
	store     AnchorStore
	guard     *RebootGuard
	persistor Persistor
	observer  Observer
	holder    Holder
}

// NewTimeSource is an initialization of TimeSource.
//
// Parameters:
//   - clock to read the time elapsed since boot.
//   - store to recover the anchor persisted by the previous process.
//   - persistor to save the live anchor on each time estimate.
//   - observer to be notified about the time source events.
func NewTimeSource(
	clock syscore.MonotonicClock,
	store AnchorStore,
	persistor Persistor,
	observer Observer,
) *TimeSource {
	return &TimeSource{
		clock:     clock,
		store:     store,
		guard:     NewRebootGuard(store),
		persistor: persistor,
		observer:  observer,
	}
}

// Deliver makes the anchor the live one.
func (s *TimeSource) Deliver(anchor Anchor) {
	s.holder.Replace(anchor)
	s.observer.ObserveDeliver()

	core.LogDbg.Printf("time-source: anchor delivered: %s\n", anchor)
}

// CurrentAnchor returns the live anchor, false if there is none.
func (s *TimeSource) CurrentAnchor() (Anchor, bool) {
	return s.holder.Snapshot()
}

// Now returns the current wall clock estimate.
//
// Remarks:
//   - The live anchor is scheduled to be persisted on each call.
//   - Without the live anchor, the persisted one is validated and installed as live.
//   - status.StatusNoAnchor is returned if there is no valid anchor.
func (s *TimeSource) Now() (time.Time, error) {
	if anchor, ok := s.holder.Snapshot(); ok {
		current, err := s.clock.Now()
		if err != nil {
			return time.Time{}, s.clockError(err)
		}

		s.persistor.Persist(anchor)
		s.observer.ObserveNow(OriginLive)

		return anchor.Extrapolate(current), nil
	}

	anchor, current, err := s.restore()
	if err != nil {
		return time.Time{}, err
	}

	s.observer.ObserveNow(OriginRestored)

	return anchor.Extrapolate(current), nil
}

// Restore installs the persisted anchor as the live one.
//
// Remarks:
//   - Nothing is done if the live anchor already exists.
//   - status.StatusNoAnchor is returned if there is no valid persisted anchor.
func (s *TimeSource) Restore() error {
	if anchor, ok := s.holder.Snapshot(); ok {
		core.LogInf.Printf("time-source: skip anchor restoring: live=%s\n", anchor)

		return nil
	}

	anchor, _, err := s.restore()
	if err != nil {
		return err
	}

	core.LogInf.Printf("time-source: anchor restored: %s\n", anchor)

	return nil
}

// Run restores the persisted anchor to fulfill the syssched.Task interface.
func (s *TimeSource) Run() error {
	return s.Restore()
}

// HandleError handles error from the Run() call.
func (*TimeSource) HandleError(err error) {
	if !errors.Is(err, status.StatusNoAnchor) {
		core.LogErr.Printf("time-source: failed to restore anchor: %v\n", err)
	}
}

func (s *TimeSource) restore() (Anchor, time.Duration, error) {
	record, err := s.store.Load()
	if err != nil {
		if !errors.Is(err, status.StatusNoData) {
			core.LogErr.Printf("time-source: failed to load anchor: %v\n", err)
		} else {
			core.LogDbg.Printf("time-source: no persisted anchor: %v\n", err)
		}

		return s.noAnchor()
	}

	// Read after load, a record saved concurrently is never ahead of this reading.
	current, err := s.clock.Now()
	if err != nil {
		return Anchor{}, 0, s.clockError(err)
	}

	anchor, ok := s.guard.Validate(record, current)
	if !ok {
		s.observer.ObserveStale()

		return s.noAnchor()
	}

	if s.holder.ReplaceIfEmpty(anchor) {
		s.observer.ObserveRestore()

		return anchor, current, nil
	}

	// Delivered concurrently, the delivered anchor wins.
	live, _ := s.holder.Snapshot()

	return live, current, nil
}

func (s *TimeSource) noAnchor() (Anchor, time.Duration, error) {
	if live, ok := s.holder.Snapshot(); ok {
		current, err := s.clock.Now()
		if err != nil {
			return Anchor{}, 0, s.clockError(err)
		}

		return live, current, nil
	}

	s.observer.ObserveNoAnchor()

	return Anchor{}, 0, status.StatusNoAnchor
}

func (s *TimeSource) clockError(err error) error {
	s.observer.ObserveNoAnchor()

	return fmt.Errorf("time-source: failed to read monotonic clock: %v: %w",
		err, status.StatusNoAnchor)
}
