package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFanoutCloserReverseOrder(t *testing.T) {
	var order []string

	closer := &FanoutCloser{}
	closer.Add("first", FuncCloser(func() error {
		order = append(order, "first")

		return nil
	}))
	closer.Add("second", FuncCloser(func() error {
		order = append(order, "second")

		return errors.New("failed to close")
	}))
	closer.Add("third", FuncCloser(func() error {
		order = append(order, "third")

		return nil
	}))

	require.Nil(t, closer.Close())
	require.Equal(t, []string{"third", "second", "first"}, order)

	require.Nil(t, closer.Close())
	require.Len(t, order, 3)
}
