package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GiuseppeFn/televerse/core/telegram"
	"github.com/GiuseppeFn/televerse/core/update"
)

// gatedClient blocks GetMe until release is closed.
type gatedClient struct {
	me      *update.User
	meErr   error
	release chan struct{}

	mu      sync.Mutex
	meCalls int
}

func newGatedClient(me *update.User) *gatedClient {
	return &gatedClient{me: me, release: make(chan struct{})}
}

func (c *gatedClient) GetMe(ctx context.Context) (*update.User, error) {
	c.mu.Lock()
	c.meCalls++
	c.mu.Unlock()

	select {
	case <-c.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return c.me, c.meErr
}

func (c *gatedClient) GetUpdates(ctx context.Context, params telegram.GetUpdatesParams) ([]update.Update, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (c *gatedClient) SetWebhook(ctx context.Context, params telegram.SetWebhookParams) error {
	return nil
}

func (c *gatedClient) DeleteWebhook(ctx context.Context, dropPending bool) error {
	return nil
}

func TestIdentityResolver_PendingQueueReplayOrder(t *testing.T) {
	t.Parallel()

	client := newGatedClient(&update.User{ID: 1, IsBot: true, Username: "helper_bot"})
	r := newIdentityResolver(nil)

	r.resolve(context.Background(), client)

	state, _ := r.current()
	require.Equal(t, IdentityPending, state)

	var mu sync.Mutex
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		r.whenResolved(func(me *update.User) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}

	close(client.release)

	require.Eventually(t, func() bool {
		state, _ := r.current()
		return state == IdentityCompleted
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []int{1, 2, 3}, order)
	mu.Unlock()

	// After completion registrations apply immediately, bypassing the
	// queue.
	applied := false
	r.whenResolved(func(me *update.User) {
		applied = true
		assert.Equal(t, "helper_bot", me.Username)
	})
	assert.True(t, applied)
}

func TestIdentityResolver_NotStartedDropsRegistration(t *testing.T) {
	t.Parallel()

	client := newGatedClient(&update.User{ID: 1, Username: "helper_bot"})
	r := newIdentityResolver(nil)

	// Registration before resolve has launched is silently dropped.
	var called bool
	r.whenResolved(func(me *update.User) { called = true })

	r.resolve(context.Background(), client)
	close(client.release)

	require.Eventually(t, func() bool {
		state, _ := r.current()
		return state == IdentityCompleted
	}, time.Second, 10*time.Millisecond)

	assert.False(t, called, "registration made before resolution launch must not replay")
}

func TestIdentityResolver_FailureResetsAndDropsQueue(t *testing.T) {
	t.Parallel()

	client := newGatedClient(nil)
	client.meErr = errors.New("unauthorized")
	r := newIdentityResolver(nil)

	r.resolve(context.Background(), client)

	var called bool
	r.whenResolved(func(me *update.User) { called = true })

	close(client.release)

	require.Eventually(t, func() bool {
		state, _ := r.current()
		return state == IdentityNotStarted
	}, time.Second, 10*time.Millisecond)

	assert.False(t, called)

	// A later resolve retries from scratch.
	client2 := newGatedClient(&update.User{ID: 1, Username: "helper_bot"})
	close(client2.release)
	r.resolve(context.Background(), client2)

	require.Eventually(t, func() bool {
		state, _ := r.current()
		return state == IdentityCompleted
	}, time.Second, 10*time.Millisecond)
}

func TestIdentityResolver_ResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	client := newGatedClient(&update.User{ID: 1, Username: "helper_bot"})
	r := newIdentityResolver(nil)

	r.resolve(context.Background(), client)
	r.resolve(context.Background(), client)
	close(client.release)

	require.Eventually(t, func() bool {
		state, _ := r.current()
		return state == IdentityCompleted
	}, time.Second, 10*time.Millisecond)

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Equal(t, 1, client.meCalls)
}

func TestIdentityState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "not_started", IdentityNotStarted.String())
	assert.Equal(t, "pending", IdentityPending.String())
	assert.Equal(t, "completed", IdentityCompleted.String())
}
