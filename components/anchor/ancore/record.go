package ancore

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/open-control-systems/time-anchor/components/status"
)

const (
	microsPerSecond = int64(time.Second / time.Microsecond)

	// Largest whole seconds value for which Record.Monotonic fits time.Duration.
	maxMonotonicSeconds = (math.MaxInt64 - int64(time.Second)) / int64(time.Second)

	// Largest wall clock magnitude whose seconds fit int64 nanoseconds.
	maxEpochSeconds = float64(math.MaxInt64 / int64(time.Second))
)

// Record is a persisted anchor.
type Record struct {
	// EpochSeconds - wall clock as fractional UNIX seconds.
	EpochSeconds float64

	// MonotonicSeconds - whole seconds of the monotonic clock reading.
	MonotonicSeconds int64

	// MonotonicMicros - sub-second microseconds of the monotonic clock reading.
	MonotonicMicros int32
}

// NewRecord converts the anchor to the persisted form.
//
// Remarks:
//   - Monotonic reading is truncated to microseconds.
func NewRecord(anchor Anchor) Record {
	wall := anchor.WallClock()
	micros := int64(anchor.Monotonic() / time.Microsecond)

	return Record{
		EpochSeconds:     float64(wall.Unix()) + float64(wall.Nanosecond())/float64(time.Second),
		MonotonicSeconds: micros / microsPerSecond,
		MonotonicMicros:  int32(micros % microsPerSecond),
	}
}

// Monotonic returns the persisted monotonic clock reading.
func (r Record) Monotonic() time.Duration {
	return time.Duration(r.MonotonicSeconds)*time.Second +
		time.Duration(r.MonotonicMicros)*time.Microsecond
}

// WallClock returns the persisted wall clock rounded to microseconds.
func (r Record) WallClock() time.Time {
	sec, frac := math.Modf(r.EpochSeconds)
	micros := math.Round(frac * float64(microsPerSecond))

	return time.Unix(int64(sec), int64(micros)*int64(time.Microsecond)).UTC()
}

// Anchor reconstructs the anchor from the record.
func (r Record) Anchor() Anchor {
	return NewAnchor(r.WallClock(), r.Monotonic())
}

// recordFields is the serialized record, a missing field decodes to nil.
type recordFields struct {
	EpochSeconds     *float64 `json:"epochSeconds"`
	MonotonicSeconds *int64   `json:"monotonicSeconds"`
	MonotonicMicros  *int32   `json:"monotonicMicros"`
}

func encodeRecord(r Record) ([]byte, error) {
	return json.Marshal(recordFields{
		EpochSeconds:     &r.EpochSeconds,
		MonotonicSeconds: &r.MonotonicSeconds,
		MonotonicMicros:  &r.MonotonicMicros,
	})
}

// decodeRecord returns status.StatusNoData for corrupted and incomplete records.
func decodeRecord(buf []byte) (Record, error) {
	var fields recordFields
	if err := json.Unmarshal(buf, &fields); err != nil {
		return Record{}, fmt.Errorf("corrupted record: %v: %w", err, status.StatusNoData)
	}

	if fields.EpochSeconds == nil ||
		fields.MonotonicSeconds == nil ||
		fields.MonotonicMicros == nil {
		return Record{}, fmt.Errorf("incomplete record: %w", status.StatusNoData)
	}

	r := Record{
		EpochSeconds:     *fields.EpochSeconds,
		MonotonicSeconds: *fields.MonotonicSeconds,
		MonotonicMicros:  *fields.MonotonicMicros,
	}

	if math.IsNaN(r.EpochSeconds) || math.Abs(r.EpochSeconds) > maxEpochSeconds ||
		r.MonotonicSeconds < 0 || r.MonotonicSeconds > maxMonotonicSeconds ||
		r.MonotonicMicros < 0 || int64(r.MonotonicMicros) >= microsPerSecond {
		return Record{}, fmt.Errorf("inconsistent record: %w", status.StatusNoData)
	}

	return r, nil
}
