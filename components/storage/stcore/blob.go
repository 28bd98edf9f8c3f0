package stcore

// Blob is an opaque value stored in the DB.
type Blob struct {
	Data []byte
}
