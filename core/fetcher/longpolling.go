package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/GiuseppeFn/televerse/core/telegram"
	"github.com/GiuseppeFn/televerse/core/update"
)

const (
	// DefaultPollTimeout is the long-poll wait bound per pull cycle.
	DefaultPollTimeout = 30 * time.Second

	// DefaultShutdownTimeout bounds how long Stop waits for the pull loop.
	DefaultShutdownTimeout = 10 * time.Second
)

var _ Fetcher = (*LongPolling)(nil)

// LongPolling acquires updates by repeatedly pulling batches from the event
// source. It owns the fetch cursor: the cursor advances past the highest
// update received only after a successful pull, so failed pulls retry the
// same updates.
type LongPolling struct {
	feed

	client telegram.Client
	logger *slog.Logger

	pollTimeout     time.Duration
	shutdownTimeout time.Duration
	limit           int
	allowedUpdates  []update.Type
	newBackoff      func() backoff.BackOff

	lifecycle sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	offset          atomic.Int64
	batchesFetched  atomic.Int64
	updatesEmitted  atomic.Int64
	fetchFailures   atomic.Int64
	lastFetchedUnix atomic.Int64
}

// LongPollingStats provides observability metrics for monitoring and tests.
type LongPollingStats struct {
	BatchesFetched int64
	UpdatesEmitted int64
	FetchFailures  int64
	Offset         int64
	IsRunning      bool
	LastFetchedAt  time.Time
}

// NewLongPolling creates a long-polling fetcher for the given client.
//
// Example:
//
//	f, err := fetcher.NewLongPolling(client,
//	    fetcher.WithPollTimeout(30*time.Second),
//	    fetcher.WithAllowedUpdates(update.TypeMessage),
//	)
func NewLongPolling(client telegram.Client, opts ...LongPollingOption) (*LongPolling, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	f := &LongPolling{
		feed:            newFeed(DefaultBufferSize),
		client:          client,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		pollTimeout:     DefaultPollTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		newBackoff:      defaultBackoff,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func defaultBackoff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0 // retry indefinitely
	return bo
}

// Start begins the continuous pull loop. Blocking; returns when the context
// is cancelled, Stop is called, or a non-transient failure occurs with no
// error hook installed.
func (f *LongPolling) Start(ctx context.Context) error {
	f.lifecycle.Lock()
	if f.cancel != nil {
		f.lifecycle.Unlock()
		return ErrAlreadyRunning
	}
	f.ctx, f.cancel = context.WithCancel(ctx)
	loopCtx := f.ctx
	f.lifecycle.Unlock()

	defer func() {
		f.lifecycle.Lock()
		if f.cancel != nil {
			f.cancel()
			f.cancel = nil
		}
		f.lifecycle.Unlock()
	}()

	f.logger.InfoContext(loopCtx, "long polling started",
		slog.Int64("offset", f.offset.Load()),
		slog.Duration("poll_timeout", f.pollTimeout))

	f.wg.Add(1)
	defer f.wg.Done()

	return f.loop(loopCtx)
}

func (f *LongPolling) loop(ctx context.Context) error {
	bo := f.newBackoff()

	for {
		if err := ctx.Err(); err != nil {
			f.logger.Info("long polling stopped")
			return err
		}

		batch, err := f.client.GetUpdates(ctx, telegram.GetUpdatesParams{
			Offset:         f.offset.Load(),
			Limit:          f.limit,
			Timeout:        int(f.pollTimeout / time.Second),
			AllowedUpdates: f.allowedUpdates,
		})
		if err != nil {
			if ctx.Err() != nil {
				f.logger.Info("long polling stopped")
				return ctx.Err()
			}

			f.fetchFailures.Add(1)

			if telegram.IsTransient(err) {
				f.reportError(err, nil)

				// A mandated rate-limit wait always wins over the
				// generic backoff.
				wait := telegram.RetryAfter(err)
				if wait <= 0 {
					wait = bo.NextBackOff()
				}

				f.logger.WarnContext(ctx, "transient fetch failure, retrying",
					slog.String("error", err.Error()),
					slog.Duration("wait", wait))

				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return ctx.Err()
				}
				continue
			}

			// Non-transient: the loop cannot make progress. Report to the
			// hook when installed, otherwise fail fast to the Start caller.
			f.logger.ErrorContext(ctx, "fatal fetch failure, stopping",
				slog.String("error", err.Error()))
			if f.reportError(err, nil) {
				return nil
			}
			return fmt.Errorf("fetch updates: %w", err)
		}

		bo.Reset()

		if len(batch) == 0 {
			continue
		}

		// Advance the cursor past the highest update in the batch before
		// the next cycle. Only this loop mutates the cursor.
		f.offset.Store(batch[len(batch)-1].UpdateID + 1)
		f.batchesFetched.Add(1)
		f.updatesEmitted.Add(int64(len(batch)))
		f.lastFetchedUnix.Store(time.Now().Unix())

		f.logger.DebugContext(ctx, "batch fetched",
			slog.Int("count", len(batch)),
			slog.Int64("next_offset", f.offset.Load()))

		f.emit(ctx, batch)
	}
}

// Stop halts the pull loop and waits for in-flight work to finish.
func (f *LongPolling) Stop() error {
	f.lifecycle.Lock()
	if f.cancel == nil {
		f.lifecycle.Unlock()
		return ErrNotRunning
	}
	cancel := f.cancel
	f.cancel = nil
	f.lifecycle.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		f.logger.Info("long polling stopped cleanly")
		return nil
	case <-time.After(f.shutdownTimeout):
		f.logger.Warn("long polling shutdown timeout exceeded",
			slog.Duration("timeout", f.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", f.shutdownTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
func (f *LongPolling) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- f.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = f.Stop()
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

// IsRunning reports whether the pull loop is active.
func (f *LongPolling) IsRunning() bool {
	f.lifecycle.Lock()
	defer f.lifecycle.Unlock()
	return f.cancel != nil
}

// Offset returns the current fetch cursor.
func (f *LongPolling) Offset() int64 {
	return f.offset.Load()
}

// Stats returns current fetcher statistics.
func (f *LongPolling) Stats() LongPollingStats {
	var last time.Time
	if unix := f.lastFetchedUnix.Load(); unix > 0 {
		last = time.Unix(unix, 0)
	}

	return LongPollingStats{
		BatchesFetched: f.batchesFetched.Load(),
		UpdatesEmitted: f.updatesEmitted.Load(),
		FetchFailures:  f.fetchFailures.Load(),
		Offset:         f.offset.Load(),
		IsRunning:      f.IsRunning(),
		LastFetchedAt:  last,
	}
}

// Healthcheck validates that the fetcher is operational.
func (f *LongPolling) Healthcheck(ctx context.Context) error {
	if !f.IsRunning() {
		return errors.Join(ErrHealthcheckFailed, ErrNotRunning)
	}
	return nil
}
