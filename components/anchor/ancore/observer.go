package ancore

// Origin describes where the anchor used for the estimate came from.
type Origin string

const (
	// OriginLive - anchor delivered during the process lifetime.
	OriginLive Origin = "live"

	// OriginRestored - anchor recovered from the persistent storage.
	OriginRestored Origin = "restored"
)

// Observer is notified about the time source events.
//
// Remarks:
//   - Implementation should be thread-safe and non-blocking.
type Observer interface {
	// ObserveDeliver is called when a new anchor is delivered.
	ObserveDeliver()

	// ObserveNow is called when the time estimate is produced.
	ObserveNow(origin Origin)

	// ObserveNoAnchor is called when there is no anchor to produce the time estimate.
	ObserveNoAnchor()

	// ObserveRestore is called when the persisted anchor is installed as the live one.
	ObserveRestore()

	// ObserveStale is called when the persisted anchor is discarded after reboot.
	ObserveStale()

	// ObservePersist is called when the anchor save is finished, err is nil on success.
	ObservePersist(err error)
}

// NoopObserver is a non-operational observer.
type NoopObserver struct{}

// ObserveDeliver is non-operational.
func (NoopObserver) ObserveDeliver() {}

// ObserveNow is non-operational.
func (NoopObserver) ObserveNow(Origin) {}

// ObserveNoAnchor is non-operational.
func (NoopObserver) ObserveNoAnchor() {}

// ObserveRestore is non-operational.
func (NoopObserver) ObserveRestore() {}

// ObserveStale is non-operational.
func (NoopObserver) ObserveStale() {}

// ObservePersist is non-operational.
func (NoopObserver) ObservePersist(error) {}
