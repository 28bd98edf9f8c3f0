package ancore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/time-anchor/components/status"
)

func TestPersisterSave(t *testing.T) {
	saver := &testSaver{}
	observer := &testObserver{}

	persister := NewPersister(context.Background(), saver, observer)
	require.Nil(t, persister.Start())
	require.Equal(t, status.StatusInvalidState, persister.Start())

	anchor := NewAnchor(time.Unix(1704067200, 0), time.Second)
	persister.Persist(anchor)

	require.Eventually(t, func() bool {
		return len(saver.getSaved()) == 1
	}, time.Second*5, time.Millisecond*5)

	require.True(t, anchor.Equal(saver.getSaved()[0]))
	require.Nil(t, persister.Stop())

	ok, failed := observer.persistCounts()
	require.Equal(t, 1, ok)
	require.Equal(t, 0, failed)
}

func TestPersisterCoalesce(t *testing.T) {
	saver := &testSaver{blockCh: make(chan struct{})}

	persister := NewPersister(context.Background(), saver, NoopObserver{})
	require.Nil(t, persister.Start())

	first := NewAnchor(time.Unix(100, 0), time.Second)
	persister.Persist(first)

	// The first save is blocked, the following requests are coalesced.
	for i := 2; i <= 100; i++ {
		persister.Persist(NewAnchor(time.Unix(int64(i*100), 0), time.Second*time.Duration(i)))
	}

	last := NewAnchor(time.Unix(100*100, 0), time.Second*100)

	close(saver.blockCh)
	require.Nil(t, persister.Stop())

	saved := saver.getSaved()
	require.LessOrEqual(t, len(saved), 2)
	require.True(t, last.Equal(saved[len(saved)-1]))
}

func TestPersisterFlushOnStop(t *testing.T) {
	saver := &testSaver{}

	persister := NewPersister(context.Background(), saver, NoopObserver{})

	anchor := NewAnchor(time.Unix(1704067200, 0), time.Second)
	persister.Persist(anchor)

	require.Nil(t, persister.Start())
	require.Nil(t, persister.Stop())

	saved := saver.getSaved()
	require.Len(t, saved, 1)
	require.True(t, anchor.Equal(saved[0]))
}

func TestPersisterSaveError(t *testing.T) {
	saver := &testSaver{err: errors.New("disk is full")}
	observer := &testObserver{}

	persister := NewPersister(context.Background(), saver, observer)
	require.Nil(t, persister.Start())

	persister.Persist(NewAnchor(time.Unix(1704067200, 0), time.Second))

	require.Eventually(t, func() bool {
		_, failed := observer.persistCounts()
		return failed == 1
	}, time.Second*5, time.Millisecond*5)

	require.Nil(t, persister.Stop())
}

func TestPersisterStopWithoutStart(t *testing.T) {
	saver := &testSaver{}

	persister := NewPersister(context.Background(), saver, NoopObserver{})
	persister.Persist(NewAnchor(time.Unix(1704067200, 0), time.Second))

	require.Nil(t, persister.Stop())
	require.Empty(t, saver.getSaved())
}
