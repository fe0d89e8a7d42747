package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster is an in-memory Broadcaster implementation. It is safe
// for concurrent use; broadcasts take a read lock so they can proceed in
// parallel, while subscription changes take the write lock.
type MemoryBroadcaster[T any] struct {
	mu      sync.RWMutex
	subs    map[*memorySubscriber[T]]struct{}
	bufSize int
	closed  bool
}

// NewMemoryBroadcaster creates a broadcaster whose subscribers each buffer
// up to bufSize messages. A non-positive bufSize falls back to 1.
func NewMemoryBroadcaster[T any](bufSize int) *MemoryBroadcaster[T] {
	if bufSize <= 0 {
		bufSize = 1
	}
	return &MemoryBroadcaster[T]{
		subs:    make(map[*memorySubscriber[T]]struct{}),
		bufSize: bufSize,
	}
}

// Broadcast implements Broadcaster.
func (b *MemoryBroadcaster[T]) Broadcast(ctx context.Context, msg Message[T]) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBroadcasterClosed
	}

	for sub := range b.subs {
		select {
		case sub.ch <- msg:
		default:
			// Buffer full: drop for this subscriber.
		}
	}
	return nil
}

// Subscribe implements Broadcaster.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	sub := &memorySubscriber[T]{
		parent: b,
		ch:     make(chan Message[T], b.bufSize),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		sub.closed = true
		return sub
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	// Cleanup runs asynchronously so a cancelled context never blocks the
	// broadcaster.
	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			_ = sub.Close()
		}()
	}

	return sub
}

// Close implements Broadcaster.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for sub := range b.subs {
		sub.mu.Lock()
		if !sub.closed {
			sub.closed = true
			close(sub.ch)
		}
		sub.mu.Unlock()
		delete(b.subs, sub)
	}
	return nil
}

type memorySubscriber[T any] struct {
	parent *MemoryBroadcaster[T]
	ch     chan Message[T]

	mu     sync.Mutex
	closed bool
}

// Receive implements Subscriber.
func (s *memorySubscriber[T]) Receive(ctx context.Context) <-chan Message[T] {
	return s.ch
}

// Close implements Subscriber.
func (s *memorySubscriber[T]) Close() error {
	s.parent.mu.Lock()
	delete(s.parent.subs, s)
	s.parent.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.ch)
	return nil
}
