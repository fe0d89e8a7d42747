package dispatcher

import (
	"io"
	"log/slog"
	"time"

	"github.com/GiuseppeFn/televerse/core/update"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// Source is an update feed the dispatcher can consume. Both long polling
// and webhook fetchers satisfy it.
type Source interface {
	Updates() <-chan update.Update
}

// WithSource sets the update feed the dispatcher consumes.
func WithSource(src Source) Option {
	return func(d *Dispatcher) {
		if src != nil {
			d.source = src
		}
	}
}

// WithLogger sets the logger for dispatcher operations.
// Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		} else {
			d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
}

// WithErrorHandler installs the hook handler failures are routed to.
// With a hook installed the dispatch loop continues past failures instead
// of stopping on the first one.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(d *Dispatcher) {
		d.errHandler = handler
	}
}

// WithShutdownTimeout sets the maximum duration Stop waits for the in-flight
// dispatch to complete. Defaults to 30 seconds.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.shutdownTimeout = timeout
		}
	}
}
