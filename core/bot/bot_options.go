package bot

import (
	"io"
	"log/slog"

	"github.com/GiuseppeFn/televerse/core/fetcher"
	"github.com/GiuseppeFn/televerse/core/telegram"
)

// Option configures a Bot during construction.
type Option func(*Bot)

// WithClient overrides the default HTTP API client. Useful for tests and
// for callers with a pre-configured client.
func WithClient(client telegram.Client) Option {
	return func(b *Bot) {
		if client != nil {
			b.client = client
		}
	}
}

// WithFetcher overrides the default long polling fetcher, e.g. with a
// webhook fetcher.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(b *Bot) {
		if f != nil {
			b.fetcher = f
		}
	}
}

// WithLogger sets the logger shared by the bot and the components it
// constructs. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		if logger != nil {
			b.logger = logger
		} else {
			b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}
}

// WithErrorHandler installs the failure hook on both the fetcher and the
// dispatcher at construction time.
func WithErrorHandler(handler fetcher.ErrorHandler) Option {
	return func(b *Bot) {
		b.errHandler = handler
	}
}
