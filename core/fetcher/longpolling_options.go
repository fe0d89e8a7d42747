package fetcher

import (
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/GiuseppeFn/televerse/core/update"
)

// LongPollingOption configures a LongPolling fetcher.
type LongPollingOption func(*LongPolling)

// WithPollTimeout sets the long-poll wait bound per pull cycle.
// Default is 30s. Values below one second fall back to short polling.
func WithPollTimeout(d time.Duration) LongPollingOption {
	return func(f *LongPolling) {
		if d >= 0 {
			f.pollTimeout = d
		}
	}
}

// WithLimit caps the number of updates pulled per cycle (1-100).
// Zero keeps the platform default.
func WithLimit(limit int) LongPollingOption {
	return func(f *LongPolling) {
		if limit >= 0 {
			f.limit = limit
		}
	}
}

// WithOffset sets the initial fetch cursor. Useful to skip updates that
// accumulated while the bot was down.
func WithOffset(offset int64) LongPollingOption {
	return func(f *LongPolling) {
		f.offset.Store(offset)
	}
}

// WithAllowedUpdates narrows the update kinds the event source delivers.
func WithAllowedUpdates(types ...update.Type) LongPollingOption {
	return func(f *LongPolling) {
		f.allowedUpdates = types
	}
}

// WithLongPollingBufferSize sets the buffer size of the output feeds.
// Default is 100.
func WithLongPollingBufferSize(size int) LongPollingOption {
	return func(f *LongPolling) {
		if size > 0 {
			f.feed = newFeed(size)
		}
	}
}

// WithLongPollingShutdownTimeout configures the maximum wait for the pull
// loop to drain during Stop. Default is 10s.
func WithLongPollingShutdownTimeout(d time.Duration) LongPollingOption {
	return func(f *LongPolling) {
		if d > 0 {
			f.shutdownTimeout = d
		}
	}
}

// WithBackoff replaces the retry backoff used after transient failures.
// The factory is invoked once per Start so restarts begin fresh.
func WithBackoff(factory func() backoff.BackOff) LongPollingOption {
	return func(f *LongPolling) {
		if factory != nil {
			f.newBackoff = factory
		}
	}
}

// WithLongPollingLogger configures structured logging for the fetcher.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLongPollingLogger(logger *slog.Logger) LongPollingOption {
	return func(f *LongPolling) {
		if logger != nil {
			f.logger = logger
		}
	}
}
