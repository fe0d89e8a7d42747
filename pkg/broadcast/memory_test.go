package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GiuseppeFn/televerse/pkg/broadcast"
)

func TestMemoryBroadcaster_FanOut(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](10)
	defer b.Close()

	ctx := context.Background()
	sub1 := b.Subscribe(ctx)
	sub2 := b.Subscribe(ctx)

	require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 7}))

	for _, sub := range []broadcast.Subscriber[int]{sub1, sub2} {
		select {
		case msg := <-sub.Receive(ctx):
			assert.Equal(t, 7, msg.Data)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive message")
		}
	}
}

func TestMemoryBroadcaster_SlowSubscriberDrops(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](1)
	defer b.Close()

	ctx := context.Background()
	sub := b.Subscribe(ctx)

	require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
	require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 2})) // dropped, buffer full

	msg := <-sub.Receive(ctx)
	assert.Equal(t, 1, msg.Data)

	select {
	case extra := <-sub.Receive(ctx):
		t.Fatalf("expected overflow message to be dropped, got %d", extra.Data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBroadcaster_ContextCleanup(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](10)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	cancel()

	// Channel closes once the cancellation is observed.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-sub.Receive(context.Background()):
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryBroadcaster_Close(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](10)
	ctx := context.Background()
	sub := b.Subscribe(ctx)

	require.NoError(t, b.Close())

	_, ok := <-sub.Receive(ctx)
	assert.False(t, ok, "subscriber channel should be closed")

	err := b.Broadcast(ctx, broadcast.Message[string]{Data: "late"})
	assert.ErrorIs(t, err, broadcast.ErrBroadcasterClosed)

	// Subscribing after close yields an already-closed subscriber.
	late := b.Subscribe(ctx)
	_, ok = <-late.Receive(ctx)
	assert.False(t, ok)

	assert.NoError(t, b.Close(), "double close is safe")
}

func TestMemorySubscriber_DoubleCloseSafe(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](10)
	defer b.Close()

	sub := b.Subscribe(context.Background())
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
}
