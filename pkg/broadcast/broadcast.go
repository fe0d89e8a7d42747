package broadcast

import (
	"context"
	"errors"
)

var (
	// ErrBroadcasterClosed indicates operations on a closed broadcaster.
	ErrBroadcasterClosed = errors.New("broadcast: broadcaster is closed")

	// ErrSubscriberClosed indicates operations on a closed subscriber.
	ErrSubscriberClosed = errors.New("broadcast: subscriber is closed")
)

// Message wraps a broadcast payload.
type Message[T any] struct {
	Data T
}

// Broadcaster sends messages to multiple subscribers.
type Broadcaster[T any] interface {
	// Broadcast delivers msg to every active subscriber. Delivery is
	// non-blocking: slow subscribers drop messages instead of stalling the
	// broadcaster.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Subscribe registers a new subscriber scoped to ctx. Cancelling ctx
	// removes the subscription.
	Subscribe(ctx context.Context) Subscriber[T]

	// Close shuts down the broadcaster and all subscriber channels.
	Close() error
}

// Subscriber receives broadcast messages.
type Subscriber[T any] interface {
	// Receive returns the subscriber's message channel. The channel is
	// closed when the subscriber or the broadcaster shuts down.
	Receive(ctx context.Context) <-chan Message[T]

	// Close removes the subscription.
	Close() error
}
