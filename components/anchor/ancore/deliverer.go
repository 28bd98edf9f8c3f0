package ancore

// Deliverer accepts anchors from an external time source.
type Deliverer interface {
	// Deliver makes the anchor the live one, the last delivered anchor wins.
	Deliver(anchor Anchor)
}
