package status

import "errors"

var (
	// StatusInvalidState indicates that an operation can't be performed due to invalid state.
	StatusInvalidState = errors.New("invalid state")

	// StatusNotSupported indicates that an operation isn't supported.
	StatusNotSupported = errors.New("not implemented")

	// StatusNoData indicates that the requested data doesn't exist or is incomplete.
	StatusNoData = errors.New("no data")

	// StatusNoAnchor indicates that neither a live nor a valid persisted time anchor exists.
	StatusNoAnchor = errors.New("no anchor available")
)
