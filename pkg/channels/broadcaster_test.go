package channels_test

import (
	"sync"
	"testing"
	"time"

	"github.com/alkime/knobs/pkg/channels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster(t *testing.T) {
	t.Run("error cases", func(t *testing.T) {
		t.Run("negative buffer", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			_, _, err := b.Subscribe(-1)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "cannot be negative")
		})

		t.Run("zero timeout", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			_, _, err := b.SubscribeWithTimeout(1, 0)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "must be positive")
		})

		t.Run("subscribe after close", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			b.Close()
			_, _, err := b.Subscribe(1)
			assert.ErrorIs(t, err, channels.ErrChannelClosed)
		})
	})

	t.Run("basic broadcasting", func(t *testing.T) {
		t.Run("publish without subscribers is a no-op", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			b.Publish(1)
			assert.Equal(t, 0, b.Len())
		})

		t.Run("multiple subscribers receive same messages", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub1, _, err := b.Subscribe(10)
			require.NoError(t, err)
			sub2, _, err := b.Subscribe(10)
			require.NoError(t, err)

			b.Publish(1)
			b.Publish(2)
			b.Publish(3)
			b.Close()

			assert.Equal(t, []int{1, 2, 3}, channels.ReceiveAll(sub1, 10*time.Millisecond, 0))
			assert.Equal(t, []int{1, 2, 3}, channels.ReceiveAll(sub2, 10*time.Millisecond, 0))
		})

		t.Run("late subscriber only sees later messages", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			early, _, err := b.Subscribe(10)
			require.NoError(t, err)

			b.Publish(1)

			late, _, err := b.Subscribe(10)
			require.NoError(t, err)

			b.Publish(2)
			b.Close()

			assert.Equal(t, []int{1, 2}, channels.ReceiveAll(early, 10*time.Millisecond, 0))
			assert.Equal(t, []int{2}, channels.ReceiveAll(late, 10*time.Millisecond, 0))
		})
	})

	t.Run("unsubscribe", func(t *testing.T) {
		b := channels.NewBroadcaster[int]()
		sub, unsubscribe, err := b.Subscribe(10)
		require.NoError(t, err)
		require.Equal(t, 1, b.Len())

		b.Publish(1)
		unsubscribe()
		unsubscribe() // idempotent
		b.Publish(2)

		assert.Equal(t, 0, b.Len())
		assert.Equal(t, []int{1}, channels.ReceiveAll(sub, 10*time.Millisecond, 0))
	})

	t.Run("message dropping", func(t *testing.T) {
		t.Run("non-blocking subscriber drops when full", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub, _, err := b.Subscribe(1)
			require.NoError(t, err)

			b.Publish(1)
			b.Publish(2)

			stats := b.Stats()
			require.Len(t, stats, 1)
			assert.Equal(t, 1, stats[0].Dropped)
			assert.False(t, stats[0].Inactive)

			b.Close()
			assert.Equal(t, []int{1}, channels.ReceiveAll(sub, 10*time.Millisecond, 0))
		})

		t.Run("timeout subscriber drops on timeout", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub, _, err := b.SubscribeWithTimeout(1, time.Millisecond)
			require.NoError(t, err)

			b.Publish(1)
			b.Publish(2)

			stats := b.Stats()
			require.Len(t, stats, 1)
			assert.Equal(t, 1, stats[0].Dropped)

			b.Close()
			assert.Equal(t, []int{1}, channels.ReceiveAll(sub, 10*time.Millisecond, 0))
		})

		t.Run("timeout subscriber receives when drained in time", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub, _, err := b.SubscribeWithTimeout(0, time.Second)
			require.NoError(t, err)

			var got []int
			var wg sync.WaitGroup
			wg.Go(func() {
				got = channels.ReceiveAll(sub, time.Second, 2)
			})

			b.Publish(1)
			b.Publish(2)
			wg.Wait()

			assert.Equal(t, []int{1, 2}, got)
		})
	})

	t.Run("close", func(t *testing.T) {
		b := channels.NewBroadcaster[string]()
		sub, unsubscribe, err := b.Subscribe(1)
		require.NoError(t, err)

		b.Close()
		b.Close()
		unsubscribe() // after close: must not double-close

		_, open := <-sub
		assert.False(t, open)
		b.Publish("ignored")
		assert.Equal(t, 0, b.Len())
	})
}
