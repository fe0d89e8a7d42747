package telegram

import (
	"context"

	"github.com/GiuseppeFn/televerse/core/update"
)

// GetUpdatesParams controls one pull cycle against the event source.
type GetUpdatesParams struct {
	// Offset is the fetch cursor: the identifier of the first update to
	// return. The platform discards every update below it.
	Offset int64 `json:"offset,omitempty"`

	// Limit caps the batch size (1-100). Zero means the platform default.
	Limit int `json:"limit,omitempty"`

	// Timeout is the long-poll wait bound in seconds. Zero means short
	// polling.
	Timeout int `json:"timeout,omitempty"`

	// AllowedUpdates narrows the kinds of updates delivered. Empty keeps the
	// previous setting.
	AllowedUpdates []update.Type `json:"allowed_updates,omitempty"`
}

// SetWebhookParams describes the push-delivery target to register.
type SetWebhookParams struct {
	URL string `json:"url"`

	// SecretToken is echoed back by the platform on every delivery so the
	// inbound endpoint can authenticate it.
	SecretToken string `json:"secret_token,omitempty"`

	MaxConnections int           `json:"max_connections,omitempty"`
	AllowedUpdates []update.Type `json:"allowed_updates,omitempty"`
}

// Client is the contract the fetchers and the identity resolver need from
// the remote event source. Implementations must be safe for concurrent use.
type Client interface {
	// GetUpdates pulls the next batch of pending updates at the given
	// cursor, blocking up to the long-poll bound.
	GetUpdates(ctx context.Context, params GetUpdatesParams) ([]update.Update, error)

	// SetWebhook registers a push-delivery target. Subsequent GetUpdates
	// calls fail until the registration is removed.
	SetWebhook(ctx context.Context, params SetWebhookParams) error

	// DeleteWebhook removes the push-delivery registration. When
	// dropPending is true, queued updates are discarded as well.
	DeleteWebhook(ctx context.Context, dropPending bool) error

	// GetMe resolves the bot's own identity.
	GetMe(ctx context.Context) (*update.User, error)
}
