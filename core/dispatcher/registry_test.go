package dispatcher_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GiuseppeFn/televerse/core/dispatcher"
	"github.com/GiuseppeFn/televerse/core/update"
)

func noopHandler(ctx context.Context, u update.Update) error { return nil }

func TestRegistry_AddAndRemove(t *testing.T) {
	t.Parallel()

	t.Run("remove by name deletes all matches", func(t *testing.T) {
		t.Parallel()

		r := dispatcher.NewRegistry()
		r.Add(dispatcher.Scope{Name: "a", Handler: noopHandler})
		r.Add(dispatcher.Scope{Name: "b", Handler: noopHandler})
		r.Add(dispatcher.Scope{Name: "a", Handler: noopHandler})

		require.Equal(t, 3, r.Len())
		require.Equal(t, 2, r.Remove("a"))
		require.Equal(t, 1, r.Len())
		require.False(t, r.Contains("a"))
		require.True(t, r.Contains("b"))
	})

	t.Run("remove with empty name is a no-op", func(t *testing.T) {
		t.Parallel()

		r := dispatcher.NewRegistry()
		r.Add(dispatcher.Scope{Handler: noopHandler})
		r.Add(dispatcher.Scope{Handler: noopHandler})

		require.Equal(t, 0, r.Remove(""))
		require.Equal(t, 2, r.Len())
	})

	t.Run("remove missing name returns zero", func(t *testing.T) {
		t.Parallel()

		r := dispatcher.NewRegistry()
		r.Add(dispatcher.Scope{Name: "a", Handler: noopHandler})

		require.Equal(t, 0, r.Remove("missing"))
		require.Equal(t, 1, r.Len())
	})
}

func TestRegistry_RemoveWhere(t *testing.T) {
	t.Parallel()

	r := dispatcher.NewRegistry()
	r.Add(dispatcher.Scope{Name: "keep-1", Handler: noopHandler})
	r.Add(dispatcher.Scope{Name: "drop-1", IsGate: true})
	r.Add(dispatcher.Scope{Name: "keep-2", Handler: noopHandler})
	r.Add(dispatcher.Scope{Name: "drop-2", IsGate: true})

	removed := r.RemoveWhere(func(s dispatcher.Scope) bool { return s.IsGate })

	require.Equal(t, 2, removed)
	require.Equal(t, 2, r.Len())
	require.True(t, r.Contains("keep-1"))
	require.True(t, r.Contains("keep-2"))
	require.False(t, r.Contains("drop-1"))
}

func TestRegistry_ConcurrentMutation(t *testing.T) {
	t.Parallel()

	r := dispatcher.NewRegistry()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			r.Add(dispatcher.Scope{Name: "churn", Handler: noopHandler})
			r.Remove("churn")
		}
	}()

	for i := 0; i < 100; i++ {
		_ = r.Len()
		_ = r.Contains("churn")
	}
	<-done

	require.Equal(t, 0, r.Len())
}
