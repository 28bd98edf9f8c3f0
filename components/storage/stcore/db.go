package stcore

// DB is a key-value database to store blobs of data.
//
// Remarks:
//   - Implementation should be thread-safe.
//   - A single Write should be atomic: a reader observes either the previous or the new blob.
type DB interface {
	// Read reads a blob from the database.
	//
	// Remarks:
	//  - Implementation should return status.StatusNoData if blob doesn't exist.
	Read(key string) (Blob, error)

	// Write writes a blob to the database.
	Write(key string, blob Blob) error

	// Remove removes a blob from the database.
	//
	// Remarks:
	//  - Implementation should return nil if blob doesn't exist.
	Remove(key string) error

	// Close releases all resources for the database.
	Close() error
}
