package stcore

import (
	"time"

	"go.etcd.io/bbolt"

	"github.com/open-control-systems/time-anchor/components/status"
)

// BboltDBParams provides various configuration options for the bbolt database.
type BboltDBParams struct {
	// Path - database file path, if it doesn't exist then it will be created automatically.
	Path string

	// Bucket - bucket to operate on.
	Bucket string

	// OpenTimeout - how long to wait for the file lock held by another process.
	OpenTimeout time.Duration
}

// BboltDB is a bbolt database operating on a single bucket.
//
// References:
//   - https://github.com/etcd-io/bbolt
type BboltDB struct {
	db     *bbolt.DB
	bucket []byte
}

// NewBboltDB opens the database file and ensures the bucket exists.
func NewBboltDB(params BboltDBParams) (*BboltDB, error) {
	db, err := bbolt.Open(params.Path, 0600, &bbolt.Options{
		Timeout: params.OpenTimeout,
	})
	if err != nil {
		return nil, err
	}

	bucket := []byte(params.Bucket)

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)

		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &BboltDB{
		db:     db,
		bucket: bucket,
	}, nil
}

// Read reads a blob of data from the bucket.
//
// Remarks:
//   - Returned data is a copy, it remains valid after the transaction is closed.
func (d *BboltDB) Read(key string) (Blob, error) {
	blob := Blob{}

	err := d.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(d.bucket)
		if bucket == nil {
			return status.StatusNoData
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return status.StatusNoData
		}

		blob.Data = clone(data)

		return nil
	})
	if err != nil {
		return Blob{}, err
	}

	return blob, nil
}

// Write writes a blob to the bucket in a single transaction.
func (d *BboltDB) Write(key string, blob Blob) error {
	return d.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(d.bucket)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(key), blob.Data)
	})
}

// Remove removes a blob from the bucket.
func (d *BboltDB) Remove(key string) error {
	return d.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(d.bucket)
		if bucket == nil {
			return nil
		}

		return bucket.Delete([]byte(key))
	})
}

// Close closes the database file.
func (d *BboltDB) Close() error {
	return d.db.Close()
}
