package fetcher

import (
	"log/slog"

	"github.com/GiuseppeFn/televerse/core/update"
)

// WebhookOption configures a Webhook fetcher.
type WebhookOption func(*Webhook)

// WithSecretToken sets the secret the platform must echo on every delivery.
// A random token is generated when unset.
func WithSecretToken(token string) WebhookOption {
	return func(f *Webhook) {
		if token != "" {
			f.secretToken = token
		}
	}
}

// WithMaxConnections caps the platform's concurrent delivery connections.
func WithMaxConnections(n int) WebhookOption {
	return func(f *Webhook) {
		if n > 0 {
			f.maxConnections = n
		}
	}
}

// WithWebhookAllowedUpdates narrows the update kinds the platform delivers.
func WithWebhookAllowedUpdates(types ...update.Type) WebhookOption {
	return func(f *Webhook) {
		f.allowedUpdates = types
	}
}

// WithDropPendingOnStop discards queued updates when the registration is
// removed.
func WithDropPendingOnStop() WebhookOption {
	return func(f *Webhook) {
		f.dropPending = true
	}
}

// WithWebhookBufferSize sets the buffer size of the output feeds.
// Default is 100.
func WithWebhookBufferSize(size int) WebhookOption {
	return func(f *Webhook) {
		if size > 0 {
			f.feed = newFeed(size)
		}
	}
}

// WithWebhookLogger configures structured logging for the fetcher.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithWebhookLogger(logger *slog.Logger) WebhookOption {
	return func(f *Webhook) {
		if logger != nil {
			f.logger = logger
		}
	}
}
