package channels_test

import (
	"testing"
	"time"

	"github.com/alkime/knobs/pkg/channels"
	"github.com/stretchr/testify/assert"
)

func TestSend(t *testing.T) {
	senders := map[string]func(chan<- float64, float64) error{
		"non-blocking": channels.SendNonBlock[float64],
		"with timeout": func(ch chan<- float64, v float64) error {
			return channels.SendWithTimeout(ch, v, 5*time.Millisecond)
		},
	}

	fullErr := map[string]error{
		"non-blocking": channels.ErrChannelFull,
		"with timeout": channels.ErrChannelTimeout,
	}

	for name, send := range senders {
		t.Run(name, func(t *testing.T) {
			t.Run("room in buffer", func(t *testing.T) {
				ch := make(chan float64, 1)
				assert.NoError(t, send(ch, 60))
				assert.Equal(t, 60.0, <-ch)
			})

			t.Run("buffer full", func(t *testing.T) {
				ch := make(chan float64, 1)
				ch <- 20
				assert.ErrorIs(t, send(ch, 60), fullErr[name])
			})

			t.Run("unbuffered, nobody reading", func(t *testing.T) {
				ch := make(chan float64)
				assert.ErrorIs(t, send(ch, 60), fullErr[name])
			})

			t.Run("closed keeps buffered values", func(t *testing.T) {
				ch := make(chan float64, 2)
				ch <- 20
				close(ch)
				assert.ErrorIs(t, send(ch, 60), channels.ErrChannelClosed)
				assert.Equal(t, 20.0, <-ch)
			})
		})
	}

	t.Run("timeout waits for a reader", func(t *testing.T) {
		ch := make(chan float64)
		go func() { <-ch }()
		assert.NoError(t, channels.SendWithTimeout(ch, 60, time.Second))
	})
}

func TestReceiveAll(t *testing.T) {
	ch := make(chan int, 4)
	ch <- 1
	ch <- 2
	ch <- 3

	assert.Equal(t, []int{1, 2}, channels.ReceiveAll(ch, 10*time.Millisecond, 2))
	assert.Equal(t, []int{3}, channels.ReceiveAll(ch, 10*time.Millisecond, 0), "stops when idle")

	ch <- 4
	close(ch)
	assert.Equal(t, []int{4}, channels.ReceiveAll(ch, time.Second, 0), "stops when closed")
}
