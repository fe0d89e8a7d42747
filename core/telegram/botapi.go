package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/GiuseppeFn/televerse/core/update"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.telegram.org"

	// defaultHTTPTimeout leaves headroom above the longest supported
	// long-poll bound so the HTTP layer never cuts a poll short.
	defaultHTTPTimeout = 65 * time.Second
)

// apiResponse is the envelope every API method responds with.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters,omitempty"`
}

// BotAPI is the default HTTP implementation of Client. Safe for concurrent
// use; all mutable state lives in the http.Client.
type BotAPI struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewBotAPI creates an HTTP client for the bot API.
//
// Example:
//
//	client, err := telegram.NewBotAPI(token,
//	    telegram.WithBaseURL("http://localhost:8081"),
//	)
func NewBotAPI(token string, opts ...BotAPIOption) (*BotAPI, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	c := &BotAPI{
		token:      token,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GetUpdates implements Client.
func (c *BotAPI) GetUpdates(ctx context.Context, params GetUpdatesParams) ([]update.Update, error) {
	var updates []update.Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SetWebhook implements Client.
func (c *BotAPI) SetWebhook(ctx context.Context, params SetWebhookParams) error {
	return c.call(ctx, "setWebhook", params, nil)
}

// DeleteWebhook implements Client.
func (c *BotAPI) DeleteWebhook(ctx context.Context, dropPending bool) error {
	params := struct {
		DropPendingUpdates bool `json:"drop_pending_updates,omitempty"`
	}{DropPendingUpdates: dropPending}
	return c.call(ctx, "deleteWebhook", params, nil)
}

// GetMe implements Client.
func (c *BotAPI) GetMe(ctx context.Context) (*update.User, error) {
	var me update.User
	if err := c.call(ctx, "getMe", struct{}{}, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// call issues one API method as a JSON POST and decodes the result envelope
// into out (when out is non-nil).
func (c *BotAPI) call(ctx context.Context, method string, params any, out any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("telegram: marshal %s params: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: method, Err: err}
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &TransportError{Op: method, Err: fmt.Errorf("decode response: %w", err)}
	}

	c.logger.DebugContext(ctx, "api call completed",
		slog.String("method", method),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if !envelope.OK {
		return c.rejection(method, resp.StatusCode, envelope)
	}

	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return &TransportError{Op: method, Err: fmt.Errorf("decode result: %w", err)}
		}
	}

	return nil
}

// rejection maps an ok=false envelope onto the error taxonomy.
func (c *BotAPI) rejection(method string, httpStatus int, envelope apiResponse) error {
	code := envelope.ErrorCode
	if code == 0 {
		code = httpStatus
	}

	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return fmt.Errorf("%w: %s", ErrUnauthorized, envelope.Description)
	}

	apiErr := &APIError{
		Op:          method,
		ErrorCode:   code,
		Description: envelope.Description,
	}
	if envelope.Parameters != nil && envelope.Parameters.RetryAfter > 0 {
		apiErr.RetryAfter = time.Duration(envelope.Parameters.RetryAfter) * time.Second
	}
	return apiErr
}
