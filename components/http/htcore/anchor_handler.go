package htcore

import (
	"net/http"
	"time"

	"github.com/open-control-systems/time-anchor/components/anchor/ancore"
)

// AnchorReader returns the live anchor.
type AnchorReader interface {
	// CurrentAnchor returns the live anchor, false if there is none.
	CurrentAnchor() (ancore.Anchor, bool)
}

// AnchorResponse is a JSON representation of the live anchor.
type AnchorResponse struct {
	WallClock   string `json:"wall_clock"`
	MonotonicNS int64  `json:"monotonic_ns"`
}

// AnchorHandler exposes the live anchor over HTTP.
type AnchorHandler struct {
	reader AnchorReader
}

// NewAnchorHandler is an initialization of AnchorHandler.
func NewAnchorHandler(reader AnchorReader) *AnchorHandler {
	return &AnchorHandler{
		reader: reader,
	}
}

// ServeHTTP implements an HTTP endpoint logic.
func (h *AnchorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "error: unsupported method", http.StatusMethodNotAllowed)

		return
	}

	anchor, ok := h.reader.CurrentAnchor()
	if !ok {
		http.Error(w, "no anchor", http.StatusNotFound)

		return
	}

	WriteJSON(w, AnchorResponse{
		WallClock:   anchor.WallClock().UTC().Format(time.RFC3339Nano),
		MonotonicNS: int64(anchor.Monotonic()),
	})
}
