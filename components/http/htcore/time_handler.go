package htcore

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/open-control-systems/time-anchor/components/anchor/ancore"
	"github.com/open-control-systems/time-anchor/components/status"
	"github.com/open-control-systems/time-anchor/components/system/syscore"
)

// TimeSource estimates the current time and accepts new anchors.
type TimeSource interface {
	ancore.Deliverer

	// Now returns the current wall clock estimate.
	Now() (time.Time, error)
}

// TimeHandler handles the UNIX time configuration over HTTP.
type TimeHandler struct {
	source     TimeSource
	clock      syscore.MonotonicClock
	startPoint time.Time
}

// NewTimeHandler creates an HTTP handler for the UNIX time configuration.
//
// Parameters:
//   - source to read and anchor the time.
//   - clock to capture the monotonic reading for a delivered timestamp.
//   - startPoint - timestamps before this point are rejected.
func NewTimeHandler(
	source TimeSource,
	clock syscore.MonotonicClock,
	startPoint time.Time,
) *TimeHandler {
	return &TimeHandler{
		source:     source,
		clock:      clock,
		startPoint: startPoint,
	}
}

// ServeHTTP implements an HTTP endpoint logic.
//
// Remarks:
//   - GET without parameters returns the current UNIX time.
//   - GET with "value" anchors the provided UNIX time to the current monotonic reading.
func (h *TimeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "error: unsupported method", http.StatusMethodNotAllowed)

		return
	}

	str := r.URL.Query().Get("value")
	if str == "" {
		now, err := h.source.Now()
		if err != nil {
			code := http.StatusInternalServerError
			if errors.Is(err, status.StatusNoAnchor) {
				code = http.StatusServiceUnavailable
			}

			http.Error(w, fmt.Sprintf("failed to get UNIX time: %v", err), code)

			return
		}

		WriteText(w, strconv.FormatInt(now.Unix(), 10))

		return
	}

	timestamp, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if timestamp < h.startPoint.Unix() {
		http.Error(w, fmt.Sprintf("UNIX time is too old: value=%d", timestamp),
			http.StatusBadRequest)

		return
	}

	monotonic, err := h.clock.Now()
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read monotonic clock: %v", err),
			http.StatusInternalServerError)

		return
	}

	h.source.Deliver(ancore.NewAnchor(time.Unix(timestamp, 0), monotonic))

	WriteText(w, "OK")
}
