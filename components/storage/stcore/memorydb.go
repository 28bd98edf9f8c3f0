package stcore

import (
	"sync"

	"github.com/open-control-systems/time-anchor/components/status"
)

// MemoryDB keeps blobs in memory, nothing survives the process restart.
type MemoryDB struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryDB is an initialization of MemoryDB.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		blobs: make(map[string][]byte),
	}
}

// Read returns a copy of the stored blob.
func (d *MemoryDB) Read(key string) (Blob, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, ok := d.blobs[key]
	if !ok {
		return Blob{}, status.StatusNoData
	}

	return Blob{Data: clone(data)}, nil
}

// Write stores a copy of the blob.
func (d *MemoryDB) Write(key string, blob Blob) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.blobs[key] = clone(blob.Data)

	return nil
}

// Remove removes the blob.
func (d *MemoryDB) Remove(key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.blobs, key)

	return nil
}

// Close is non-operational.
func (*MemoryDB) Close() error {
	return nil
}

func clone(data []byte) []byte {
	buf := make([]byte, len(data))
	copy(buf, data)

	return buf
}
