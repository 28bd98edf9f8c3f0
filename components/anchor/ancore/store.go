package ancore

import (
	"github.com/open-control-systems/time-anchor/components/storage/stcore"
)

// Clearer removes the persisted anchor.
type Clearer interface {
	// Clear removes the persisted anchor, nil if there is nothing to remove.
	Clear() error
}

// Saver persists the anchor.
type Saver interface {
	// Save persists the anchor as a single record.
	Save(anchor Anchor) error
}

// AnchorStore persists, loads and clears the anchor record.
type AnchorStore interface {
	Saver
	Clearer

	// Load returns the persisted record.
	//
	// Remarks:
	//  - status.StatusNoData is returned if the record is missing, incomplete or corrupted.
	Load() (Record, error)
}

// Store keeps the anchor record under a single DB key.
//
// Remarks:
//   - All record fields are written with one DB write, a killed process never leaves
//     a partially written record behind.
type Store struct {
	db  stcore.DB
	key string
}

// NewStore is an initialization of Store.
//
// Parameters:
//   - db to persist the record.
//   - key under which the record is stored.
func NewStore(db stcore.DB, key string) *Store {
	return &Store{
		db:  db,
		key: key,
	}
}

// Save writes the anchor record.
func (s *Store) Save(anchor Anchor) error {
	buf, err := encodeRecord(NewRecord(anchor))
	if err != nil {
		return err
	}

	return s.db.Write(s.key, stcore.Blob{Data: buf})
}

// Load reads the anchor record.
func (s *Store) Load() (Record, error) {
	blob, err := s.db.Read(s.key)
	if err != nil {
		return Record{}, err
	}

	return decodeRecord(blob.Data)
}

// Clear removes the anchor record.
func (s *Store) Clear() error {
	return s.db.Remove(s.key)
}
