// Package channels has generic helpers for sending to and draining channels
// that may be full or closed.
package channels

import (
	"errors"
	"time"
)

var (
	ErrChannelClosed  = errors.New("channel closed")
	ErrChannelTimeout = errors.New("send timeout")
	ErrChannelFull    = errors.New("channel full")
)

// SendNonBlock sends msg if ch has room. It returns ErrChannelFull if it
// does not and ErrChannelClosed if ch was closed.
func SendNonBlock[T any](ch chan<- T, msg T) (err error) {
	defer recoverClosed(&err)

	select {
	case ch <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}

// SendWithTimeout waits up to timeout for ch to accept msg.
func SendWithTimeout[T any](ch chan<- T, msg T, timeout time.Duration) (err error) {
	defer recoverClosed(&err)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- msg:
		return nil
	case <-timer.C:
		return ErrChannelTimeout
	}
}

// ReceiveAll collects messages from ch until it is closed, no message arrives
// within wait, or limit messages were read. A limit of 0 means no limit.
func ReceiveAll[T any](ch <-chan T, wait time.Duration, limit int) []T {
	var out []T

	for limit == 0 || len(out) < limit {
		select {
		case msg, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, msg)
		case <-time.After(wait):
			return out
		}
	}

	return out
}

// sending on a closed channel panics; report it as an error instead
func recoverClosed(err *error) {
	if r := recover(); r != nil {
		*err = ErrChannelClosed
	}
}
