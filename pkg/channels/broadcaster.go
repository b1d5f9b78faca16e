package channels

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// subscriber holds a channel and its send timeout configuration.
type subscriber[T any] struct {
	ch       chan T
	timeout  time.Duration // zero means non-blocking
	inactive atomic.Bool
	dropped  atomic.Int32
}

func (s *subscriber[T]) send(msg T) {
	if s.inactive.Load() {
		s.dropped.Add(1)
		return
	}

	var err error
	if s.timeout > 0 {
		err = SendWithTimeout(s.ch, msg, s.timeout)
	} else {
		err = SendNonBlock(s.ch, msg)
	}

	if err != nil {
		// closed channels go inactive, anything else is just a drop
		s.dropped.Add(1)
		if errors.Is(err, ErrChannelClosed) {
			s.inactive.Store(true)
		}
	}
}

// Broadcaster delivers every published message to all current subscribers.
//
// Subscribers may join and leave at any time. Each one gets its own buffered
// channel, owned by the Broadcaster and closed on unsubscribe or Close.
// Messages are sent using the subscriber's strategy:
// - Non-blocking (default): Messages are dropped if the channel is full
// - With timeout: Messages are dropped if the send times out
type Broadcaster[T any] struct {
	mu          sync.RWMutex
	subscribers map[int]*subscriber[T]
	nextID      int
	closed      bool
}

// NewBroadcaster creates an empty Broadcaster for messages of type T.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{
		subscribers: make(map[int]*subscriber[T]),
	}
}

// Subscribe returns a channel that receives published messages in
// non-blocking mode, and a function that ends the subscription.
func (b *Broadcaster[T]) Subscribe(buffer int) (<-chan T, func(), error) {
	return b.subscribe(buffer, 0)
}

// SubscribeWithTimeout is Subscribe with a per-message send timeout.
func (b *Broadcaster[T]) SubscribeWithTimeout(buffer int, timeout time.Duration) (<-chan T, func(), error) {
	if timeout <= 0 {
		return nil, nil, errors.New("timeout must be positive")
	}

	return b.subscribe(buffer, timeout)
}

func (b *Broadcaster[T]) subscribe(buffer int, timeout time.Duration) (<-chan T, func(), error) {
	if buffer < 0 {
		return nil, nil, errors.New("buffer cannot be negative")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, ErrChannelClosed
	}

	b.nextID++
	id := b.nextID
	sub := &subscriber[T]{
		ch:      make(chan T, buffer),
		timeout: timeout,
	}
	b.subscribers[id] = sub

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			if _, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(sub.ch)
			}
		})
	}

	return sub.ch, unsubscribe, nil
}

// Publish sends msg to every subscriber. It never blocks longer than the
// largest subscriber timeout.
func (b *Broadcaster[T]) Publish(msg T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		sub.send(msg)
	}
}

// Close ends every subscription. Later Publish calls are no-ops.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for id, sub := range b.subscribers {
		delete(b.subscribers, id)
		close(sub.ch)
	}

	b.closed = true
}

// Len returns the number of active subscriptions.
func (b *Broadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subscribers)
}

type SubscriberStats struct {
	Dropped  int
	Inactive bool
}

// Stats returns drop counters for the current subscribers, in no particular
// order.
func (b *Broadcaster[T]) Stats() []SubscriberStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := make([]SubscriberStats, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		stats = append(stats, SubscriberStats{
			Dropped:  int(sub.dropped.Load()),
			Inactive: sub.inactive.Load(),
		})
	}

	return stats
}
