package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	errDown := errors.New("down")

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := Connect(context.Background(), "test", 5, time.Millisecond, func(context.Context) error {
			calls++
			if calls < 3 {
				return errDown
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := Connect(context.Background(), "test", 3, time.Millisecond, func(context.Context) error {
			calls++
			return errDown
		})
		require.ErrorIs(t, err, errDown)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := Connect(ctx, "test", 10, time.Hour, func(context.Context) error {
			calls++
			return errDown
		})
		require.ErrorIs(t, err, context.Canceled)
		require.ErrorIs(t, err, errDown)
		assert.Equal(t, 1, calls)
	})
}
