package stcore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/time-anchor/components/status"
)

func newTestBboltDB(t *testing.T, path string) *BboltDB {
	db, err := NewBboltDB(BboltDBParams{
		Path:        path,
		Bucket:      "test",
		OpenTimeout: time.Second,
	})
	require.Nil(t, err)

	return db
}

func TestBboltDBReadWriteRemove(t *testing.T) {
	db := newTestBboltDB(t, filepath.Join(t.TempDir(), "test.db"))
	defer db.Close()

	_, err := db.Read("foo")
	require.Equal(t, status.StatusNoData, err)

	require.Nil(t, db.Write("foo", Blob{Data: []byte("bar")}))

	blob, err := db.Read("foo")
	require.Nil(t, err)
	require.Equal(t, []byte("bar"), blob.Data)

	require.Nil(t, db.Remove("foo"))
	require.Nil(t, db.Remove("foo"))

	_, err = db.Read("foo")
	require.Equal(t, status.StatusNoData, err)
}

func TestBboltDBPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db := newTestBboltDB(t, path)
	require.Nil(t, db.Write("foo", Blob{Data: []byte("bar")}))
	require.Nil(t, db.Close())

	db = newTestBboltDB(t, path)
	defer db.Close()

	blob, err := db.Read("foo")
	require.Nil(t, err)
	require.Equal(t, []byte("bar"), blob.Data)
}

func TestMemoryDBCopiesData(t *testing.T) {
	db := NewMemoryDB()

	data := []byte("bar")
	require.Nil(t, db.Write("foo", Blob{Data: data}))
	data[0] = 'c'

	blob, err := db.Read("foo")
	require.Nil(t, err)
	require.Equal(t, []byte("bar"), blob.Data)

	blob.Data[0] = 'z'

	blob, err = db.Read("foo")
	require.Nil(t, err)
	require.Equal(t, []byte("bar"), blob.Data)

	require.Nil(t, db.Remove("foo"))

	_, err = db.Read("foo")
	require.Equal(t, status.StatusNoData, err)
}
