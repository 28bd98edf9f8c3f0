package core

// Closer implementation should free all allocated resources.
type Closer interface {
	// Close releases the resource.
	Close() error
}

// FuncCloser adapts a plain teardown function to Closer.
type FuncCloser func() error

// Close runs the teardown function.
func (f FuncCloser) Close() error {
	return f()
}
