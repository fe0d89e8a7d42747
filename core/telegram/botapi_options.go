package telegram

import (
	"log/slog"
	"net/http"
)

// BotAPIOption configures a BotAPI client.
type BotAPIOption func(*BotAPI)

// WithBaseURL overrides the API endpoint, e.g. to point at a local API
// server or a test double.
func WithBaseURL(url string) BotAPIOption {
	return func(c *BotAPI) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The client's timeout
// must exceed the long-poll bound passed to GetUpdates.
func WithHTTPClient(client *http.Client) BotAPIOption {
	return func(c *BotAPI) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger configures structured logging for API calls.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(logger *slog.Logger) BotAPIOption {
	return func(c *BotAPI) {
		if logger != nil {
			c.logger = logger
		}
	}
}
