package ancore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolderReplaceSnapshot(t *testing.T) {
	holder := Holder{}

	_, ok := holder.Snapshot()
	require.False(t, ok)

	first := NewAnchor(time.Unix(100, 0), time.Second)
	holder.Replace(first)

	anchor, ok := holder.Snapshot()
	require.True(t, ok)
	require.True(t, first.Equal(anchor))

	second := NewAnchor(time.Unix(200, 0), time.Second*2)
	holder.Replace(second)

	anchor, ok = holder.Snapshot()
	require.True(t, ok)
	require.True(t, second.Equal(anchor))
}

func TestHolderReplaceIfEmpty(t *testing.T) {
	holder := Holder{}

	first := NewAnchor(time.Unix(100, 0), time.Second)
	require.True(t, holder.ReplaceIfEmpty(first))

	second := NewAnchor(time.Unix(200, 0), time.Second*2)
	require.False(t, holder.ReplaceIfEmpty(second))

	anchor, ok := holder.Snapshot()
	require.True(t, ok)
	require.True(t, first.Equal(anchor))
}

func TestHolderConcurrentReplaceSnapshot(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	holder := Holder{}

	const (
		writers   = 8
		readers   = 8
		perWriter = 1000
	)

	var wg sync.WaitGroup

	for w := 0; w < writers; w++ {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := 0; i < perWriter; i++ {
				offset := time.Duration(w*perWriter+i) * time.Millisecond
				holder.Replace(NewAnchor(base.Add(offset), offset))
			}
		}(w)
	}

	for r := 0; r < readers; r++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < perWriter; i++ {
				anchor, ok := holder.Snapshot()
				if !ok {
					continue
				}

				// Every delivered anchor keeps wall - base == monotonic.
				assert.Equal(t, anchor.Monotonic(), anchor.WallClock().Sub(base))
			}
		}()
	}

	wg.Wait()

	anchor, ok := holder.Snapshot()
	require.True(t, ok)
	require.Equal(t, anchor.Monotonic(), anchor.WallClock().Sub(base))
}
