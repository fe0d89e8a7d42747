package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GiuseppeFn/televerse/core/telegram"
	"github.com/GiuseppeFn/televerse/core/update"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *telegram.BotAPI) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := telegram.NewBotAPI("test-token", telegram.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return srv, client
}

func TestNewBotAPI_EmptyToken(t *testing.T) {
	t.Parallel()

	_, err := telegram.NewBotAPI("")
	require.Error(t, err)
	assert.ErrorIs(t, err, telegram.ErrEmptyToken)
}

func TestBotAPI_GetUpdates(t *testing.T) {
	t.Parallel()

	var gotParams telegram.GetUpdatesParams
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getUpdates", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotParams))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"result": []map[string]any{
				{"update_id": 1, "message": map[string]any{"message_id": 10, "chat": map[string]any{"id": 5}, "text": "hi"}},
				{"update_id": 2, "message": map[string]any{"message_id": 11, "chat": map[string]any{"id": 5}, "text": "there"}},
			},
		})
	})

	updates, err := client.GetUpdates(context.Background(), telegram.GetUpdatesParams{Offset: 1, Timeout: 30})
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, int64(1), updates[0].UpdateID)
	assert.Equal(t, "there", updates[1].Text())
	assert.Equal(t, int64(1), gotParams.Offset)
	assert.Equal(t, 30, gotParams.Timeout)
}

func TestBotAPI_GetMe(t *testing.T) {
	t.Parallel()

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/getMe", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"id": 99, "is_bot": true, "first_name": "Tester", "username": "tester_bot"},
		})
	})

	me, err := client.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(99), me.ID)
	assert.Equal(t, "tester_bot", me.Username)
}

func TestBotAPI_Webhook(t *testing.T) {
	t.Parallel()

	var calls []string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": true})
	})

	require.NoError(t, client.SetWebhook(context.Background(), telegram.SetWebhookParams{
		URL:         "https://example.com/hook",
		SecretToken: "s3cret",
	}))
	require.NoError(t, client.DeleteWebhook(context.Background(), true))

	require.Equal(t, []string{"/bottest-token/setWebhook", "/bottest-token/deleteWebhook"}, calls)
}

func TestBotAPI_RateLimitedRejection(t *testing.T) {
	t.Parallel()

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  429,
			"description": "Too Many Requests: retry later",
			"parameters":  map[string]any{"retry_after": 3},
		})
	})

	_, err := client.GetUpdates(context.Background(), telegram.GetUpdatesParams{})
	require.Error(t, err)

	assert.True(t, telegram.IsTransient(err))
	assert.Equal(t, 3*time.Second, telegram.RetryAfter(err))
}

func TestBotAPI_Unauthorized(t *testing.T) {
	t.Parallel()

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  401,
			"description": "Unauthorized",
		})
	})

	_, err := client.GetMe(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, telegram.ErrUnauthorized)
	assert.False(t, telegram.IsTransient(err))
}

func TestBotAPI_TransportError(t *testing.T) {
	t.Parallel()

	srv, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // refuse connections

	_, err := client.GetUpdates(context.Background(), telegram.GetUpdatesParams{})
	require.Error(t, err)
	assert.True(t, telegram.IsTransient(err))
	assert.Zero(t, telegram.RetryAfter(err))
}

func TestBotAPI_ServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"error_code":  502,
			"description": "Bad Gateway",
		})
	})

	_, err := client.GetUpdates(context.Background(), telegram.GetUpdatesParams{})
	require.Error(t, err)
	assert.True(t, telegram.IsTransient(err))
}

func TestBotAPI_AllowedUpdatesOnWire(t *testing.T) {
	t.Parallel()

	var raw map[string]any
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": []any{}})
	})

	_, err := client.GetUpdates(context.Background(), telegram.GetUpdatesParams{
		AllowedUpdates: []update.Type{update.TypeMessage, update.TypeCallbackQuery},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"message", "callback_query"}, raw["allowed_updates"])
}
