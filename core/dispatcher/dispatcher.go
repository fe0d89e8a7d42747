package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GiuseppeFn/televerse/core/update"
)

// ErrorHandler is invoked when a handler action fails, with the update that
// was being dispatched. Installing a handler converts action failures from
// fail-fast to best-effort-continue.
type ErrorHandler func(err error, u *update.Update)

// updateSource is the feed side of a fetcher.
type updateSource interface {
	Updates() <-chan update.Update
}

// Dispatcher consumes an update feed and runs the matching algorithm:
// eligible scopes are scanned in reverse insertion order, gates claim
// silently, and at most one handler fires per update. Updates are processed
// strictly one at a time in arrival order; a handler completes before the
// next update is dispatched.
type Dispatcher struct {
	registry *Registry
	source   updateSource
	logger   *slog.Logger

	mu         sync.RWMutex
	errHandler ErrorHandler
	cancel     context.CancelFunc

	shutdownTimeout time.Duration
	wg              sync.WaitGroup

	dispatched atomic.Int64
	dropped    atomic.Int64
	gated      atomic.Int64
	failed     atomic.Int64
}

// Stats provides observability metrics for monitoring and tests.
type Stats struct {
	Dispatched int64 // updates for which a handler fired
	Dropped    int64 // updates no scope matched
	Gated      int64 // updates claimed silently by a gate
	Failed     int64 // handler invocations that returned an error
	IsRunning  bool
}

// New creates a dispatcher with the given options.
//
// Example:
//
//	d := dispatcher.New(
//	    dispatcher.WithSource(f),
//	    dispatcher.WithLogger(logger),
//	)
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:        NewRegistry(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Registry returns the scope registry the dispatcher evaluates.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Handle appends a scope to the registry. The newest scope has the highest
// match priority.
func (d *Dispatcher) Handle(s Scope) {
	d.registry.Add(s)
}

// Remove deletes every scope with the given name.
func (d *Dispatcher) Remove(name string) int {
	return d.registry.Remove(name)
}

// RemoveWhere deletes every scope the predicate reports true for.
func (d *Dispatcher) RemoveWhere(pred func(Scope) bool) int {
	return d.registry.RemoveWhere(pred)
}

// OnError installs the hook action failures are routed to.
func (d *Dispatcher) OnError(handler ErrorHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errHandler = handler
}

func (d *Dispatcher) errorHandler() ErrorHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.errHandler
}

// Start begins consuming the update feed. Blocking; runs until the context
// is cancelled, the feed closes, or a handler fails with no error hook
// installed.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.cancel != nil {
		d.mu.Unlock()
		return ErrAlreadyStarted
	}
	if d.source == nil {
		d.mu.Unlock()
		return ErrNoSource
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		if d.cancel != nil {
			d.cancel()
			d.cancel = nil
		}
		d.mu.Unlock()
	}()

	d.logger.InfoContext(runCtx, "dispatcher started",
		slog.Int("scope_count", d.registry.Len()))

	updates := d.source.Updates()

	d.wg.Add(1)
	defer d.wg.Done()

	for {
		select {
		case <-runCtx.Done():
			d.logger.Info("dispatcher stopping")
			return runCtx.Err()
		case u, ok := <-updates:
			if !ok {
				d.logger.Info("update feed closed")
				return nil
			}

			if err := d.Dispatch(runCtx, u); err != nil {
				return err
			}
		}
	}
}

// Stop gracefully shuts down the dispatcher, waiting for the in-flight
// dispatch to complete.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if d.cancel == nil {
		d.mu.Unlock()
		return ErrNotStarted
	}
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), d.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("dispatcher stopped cleanly")
		return nil
	case <-ctx.Done():
		d.logger.Warn("dispatcher shutdown timeout exceeded",
			slog.Duration("timeout", d.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", d.shutdownTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
func (d *Dispatcher) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- d.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = d.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// Dispatch runs the matching algorithm for one update. At most one handler
// fires; its completion is awaited. A handler failure is routed to the
// error hook when installed, otherwise returned to the caller. Unmatched
// updates are dropped without error.
func (d *Dispatcher) Dispatch(ctx context.Context, u update.Update) error {
	kind := u.Type()

	for _, s := range d.registry.eligible(kind) {
		if s.IsGate {
			if ok, _ := s.match(u); ok {
				d.gated.Add(1)
				d.logger.DebugContext(ctx, "update claimed by gate",
					slog.Int64("update_id", u.UpdateID),
					slog.String("scope", s.Name))
				return nil
			}
			continue
		}

		if s.Handler == nil {
			continue
		}

		ok, captures := s.match(u)
		if !ok {
			continue
		}

		return d.invoke(ctx, s, u, captures)
	}

	d.dropped.Add(1)
	d.logger.DebugContext(ctx, "update dropped, no matching scope",
		slog.Int64("update_id", u.UpdateID),
		slog.String("type", string(kind)))
	return nil
}

// invoke runs the selected scope's handler and applies the failure policy.
func (d *Dispatcher) invoke(ctx context.Context, s Scope, u update.Update, captures []string) (retErr error) {
	hctx := WithScopeName(ctx, s.Name)
	if captures != nil {
		hctx = WithMatches(hctx, captures)
	}

	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			retErr = d.fail(fmt.Errorf("handler panic: %v", r), s, u, time.Since(start))
		}
	}()

	if err := s.Handler(hctx, u); err != nil {
		return d.fail(err, s, u, time.Since(start))
	}

	d.dispatched.Add(1)
	d.logger.DebugContext(ctx, "handler completed",
		slog.Int64("update_id", u.UpdateID),
		slog.String("scope", s.Name),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (d *Dispatcher) fail(err error, s Scope, u update.Update, duration time.Duration) error {
	d.failed.Add(1)
	d.logger.ErrorContext(context.Background(), "handler failed",
		slog.Int64("update_id", u.UpdateID),
		slog.String("scope", s.Name),
		slog.Duration("duration", duration),
		slog.String("error", err.Error()))

	if handler := d.errorHandler(); handler != nil {
		handler(err, &u)
		return nil
	}
	return fmt.Errorf("dispatch update %d: %w", u.UpdateID, err)
}

// IsRunning reports whether the dispatch loop is active.
func (d *Dispatcher) IsRunning() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cancel != nil
}

// Stats returns current dispatcher statistics.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Dispatched: d.dispatched.Load(),
		Dropped:    d.dropped.Load(),
		Gated:      d.gated.Load(),
		Failed:     d.failed.Load(),
		IsRunning:  d.IsRunning(),
	}
}

// Healthcheck validates that the dispatcher is operational.
func (d *Dispatcher) Healthcheck(ctx context.Context) error {
	if !d.IsRunning() {
		return errors.Join(ErrHealthcheckFailed, ErrNotStarted)
	}
	return nil
}
