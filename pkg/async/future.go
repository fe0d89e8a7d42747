package async

import (
	"context"
	"time"
)

// Future represents the result of an asynchronous computation producing a
// value of type T. A Future is created by Go and completes exactly once.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Go executes fn asynchronously and returns a Future for its result.
// If ctx is already cancelled the function is never invoked and the future
// completes with the context's error.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents doing work for a caller that already gave up.
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.value, f.err = fn(ctx)
	}()

	return f
}

// Resolved returns an already-completed future carrying the given result.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{value: value, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// Await blocks until the computation completes and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout blocks until the computation completes or the timeout
// elapses, in which case it returns ErrTimeout and the zero value.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the computation completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// All waits for every future and returns their values in order. The first
// error encountered (in argument order) is returned alongside the partial
// results.
func All[T any](futures ...*Future[T]) ([]T, error) {
	values := make([]T, 0, len(futures))
	var firstErr error
	for _, f := range futures {
		v, err := f.Await()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		values = append(values, v)
	}
	return values, firstErr
}

// Any waits for the first future to complete and returns its index and
// result. Spawns one goroutine per future; all of them exit naturally once
// their future completes.
func Any[T any](futures ...*Future[T]) (int, T, error) {
	var zero T
	if len(futures) == 0 {
		return -1, zero, ErrNoFutures
	}

	type completion struct {
		index int
		value T
		err   error
	}

	done := make(chan completion, 1)
	for i, f := range futures {
		go func(index int, f *Future[T]) {
			v, err := f.Await()
			select {
			case done <- completion{index, v, err}:
			default:
			}
		}(i, f)
	}

	res := <-done
	return res.index, res.value, res.err
}
