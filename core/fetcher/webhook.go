package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/GiuseppeFn/televerse/core/telegram"
	"github.com/GiuseppeFn/televerse/core/update"
)

// secretTokenHeader carries the secret the platform echoes back on every
// push delivery.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

var _ Fetcher = (*Webhook)(nil)

// Webhook acquires updates through push delivery. Start performs a single
// registration call describing where updates should be delivered; updates
// then enter the feed either through the bundled HTTP handler or through
// Deliver, the seam for callers that terminate the inbound transport
// themselves. There is no retry loop: delivery failures are the inbound
// transport's concern.
type Webhook struct {
	feed

	client telegram.Client
	logger *slog.Logger

	url            string
	secretToken    string
	maxConnections int
	allowedUpdates []update.Type
	dropPending    bool

	lifecycle sync.Mutex
	cancel    context.CancelFunc

	delivered atomic.Int64
}

// NewWebhook creates a push-delivery fetcher registering the given URL.
// A secret token is generated when none is configured, so the HTTP handler
// can always authenticate deliveries.
func NewWebhook(client telegram.Client, url string, opts ...WebhookOption) (*Webhook, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if url == "" {
		return nil, ErrMissingWebhookURL
	}

	f := &Webhook{
		feed:   newFeed(DefaultBufferSize),
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		url:    url,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.secretToken == "" {
		f.secretToken = uuid.NewString()
	}

	return f, nil
}

// Start registers the push-delivery target and blocks until the context is
// cancelled or Stop is called. Registration failures propagate to the
// caller.
func (f *Webhook) Start(ctx context.Context) error {
	f.lifecycle.Lock()
	if f.cancel != nil {
		f.lifecycle.Unlock()
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.lifecycle.Unlock()

	if err := f.client.SetWebhook(runCtx, telegram.SetWebhookParams{
		URL:            f.url,
		SecretToken:    f.secretToken,
		MaxConnections: f.maxConnections,
		AllowedUpdates: f.allowedUpdates,
	}); err != nil {
		f.lifecycle.Lock()
		f.cancel = nil
		f.lifecycle.Unlock()
		cancel()
		return fmt.Errorf("register webhook: %w", err)
	}

	f.logger.InfoContext(runCtx, "webhook registered", slog.String("url", f.url))

	<-runCtx.Done()
	f.logger.Info("webhook fetcher stopped")
	return runCtx.Err()
}

// Stop deregisters the push-delivery target and halts the fetcher.
func (f *Webhook) Stop() error {
	f.lifecycle.Lock()
	if f.cancel == nil {
		f.lifecycle.Unlock()
		return ErrNotRunning
	}
	cancel := f.cancel
	f.cancel = nil
	f.lifecycle.Unlock()

	cancel()

	// Deregistration must not depend on the (now cancelled) run context.
	ctx, ctxCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer ctxCancel()

	if err := f.client.DeleteWebhook(ctx, f.dropPending); err != nil {
		return fmt.Errorf("deregister webhook: %w", err)
	}

	f.logger.Info("webhook deregistered")
	return nil
}

// Run provides errgroup compatibility for coordinated lifecycle management.
func (f *Webhook) Run(ctx context.Context) func() error {
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

// IsRunning reports whether the push-delivery registration is active.
func (f *Webhook) IsRunning() bool {
	f.lifecycle.Lock()
	defer f.lifecycle.Unlock()
	return f.cancel != nil
}

// SecretToken returns the token the platform echoes on every delivery.
// Callers terminating the inbound transport themselves use it to
// authenticate requests.
func (f *Webhook) SecretToken() string {
	return f.secretToken
}

// Deliver forwards one externally received update onto the output feeds.
func (f *Webhook) Deliver(u update.Update) error {
	return f.DeliverBatch([]update.Update{u})
}

// DeliverBatch forwards a batch of externally received updates onto the
// output feeds, preserving order.
func (f *Webhook) DeliverBatch(batch []update.Update) error {
	f.lifecycle.Lock()
	if f.cancel == nil {
		f.lifecycle.Unlock()
		return ErrNotRunning
	}
	f.lifecycle.Unlock()

	f.delivered.Add(int64(len(batch)))
	f.emit(context.Background(), batch)
	return nil
}

// Delivered returns the number of updates accepted so far.
func (f *Webhook) Delivered() int64 {
	return f.delivered.Load()
}

// Handler returns an HTTP handler terminating the platform's push
// deliveries: it authenticates the secret token, decodes the update, and
// forwards it onto the feeds.
func (f *Webhook) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if r.Header.Get(secretTokenHeader) != f.secretToken {
			f.logger.Warn("webhook delivery rejected: bad secret token")
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var u update.Update
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			f.logger.Warn("webhook delivery rejected: malformed payload",
				slog.String("error", err.Error()))
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if err := f.Deliver(u); err != nil {
			http.Error(w, "conflict", http.StatusConflict)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}
