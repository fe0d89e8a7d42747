package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the computation does
	// not complete in time.
	ErrTimeout = errors.New("async: await timed out")

	// ErrNoFutures is returned by Any when called with no futures.
	ErrNoFutures = errors.New("async: no futures provided")
)
