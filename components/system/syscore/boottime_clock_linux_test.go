//go:build linux

package syscore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoottimeClockNonDecreasing(t *testing.T) {
	clock := NewMonotonicClock()

	prev, err := clock.Now()
	require.Nil(t, err)
	require.Greater(t, int64(prev), int64(0))

	for i := 0; i < 1000; i++ {
		curr, err := clock.Now()
		require.Nil(t, err)
		require.GreaterOrEqual(t, int64(curr), int64(prev))

		prev = curr
	}
}
