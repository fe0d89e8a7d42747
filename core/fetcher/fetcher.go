package fetcher

import (
	"context"
	"sync"

	"github.com/GiuseppeFn/televerse/core/update"
	"github.com/GiuseppeFn/televerse/pkg/broadcast"
)

const (
	// DefaultBufferSize is the default buffer size of the output feeds.
	DefaultBufferSize = 100
)

// ErrorHandler is invoked with a failure and, when the failure occurred
// while an update was being processed, the update in question. Installing a
// handler converts transient and dispatch-time failures from fail-fast to
// best-effort-continue.
type ErrorHandler func(err error, u *update.Update)

// Fetcher continuously acquires updates from the remote event source and
// emits them onto its output feeds.
type Fetcher interface {
	// Start begins acquisition. Blocking; runs until the context is
	// cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop halts acquisition and releases any push-delivery registration.
	// Once Stop returns, no further updates are emitted.
	Stop() error

	// Run provides errgroup compatibility for coordinated lifecycle
	// management.
	Run(ctx context.Context) func() error

	// IsRunning reports whether the fetcher is actively acquiring updates.
	IsRunning() bool

	// Updates is the individual-update output feed. Updates appear in the
	// order their batch delivered them.
	Updates() <-chan update.Update

	// Batches is the batch output feed, emitting updates grouped as
	// received.
	Batches() <-chan []update.Update

	// Subscribe adds a broadcast tap on the individual-update feed for
	// additional observers. Slow taps drop; the primary feed is unaffected.
	Subscribe(ctx context.Context) broadcast.Subscriber[update.Update]

	// OnError installs the failure hook shared by all acquisition
	// strategies.
	OnError(handler ErrorHandler)
}

// feed is the output side shared by both acquisition strategies.
type feed struct {
	updates chan update.Update
	batches chan []update.Update
	tap     *broadcast.MemoryBroadcaster[update.Update]

	mu         sync.RWMutex
	errHandler ErrorHandler
}

func newFeed(bufferSize int) feed {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return feed{
		updates: make(chan update.Update, bufferSize),
		batches: make(chan []update.Update, bufferSize),
		tap:     broadcast.NewMemoryBroadcaster[update.Update](bufferSize),
	}
}

func (f *feed) Updates() <-chan update.Update { return f.updates }

func (f *feed) Batches() <-chan []update.Update { return f.batches }

func (f *feed) Subscribe(ctx context.Context) broadcast.Subscriber[update.Update] {
	return f.tap.Subscribe(ctx)
}

func (f *feed) OnError(handler ErrorHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errHandler = handler
}

func (f *feed) errorHandler() ErrorHandler {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.errHandler
}

// reportError invokes the installed hook, if any. Returns true when a hook
// absorbed the failure.
func (f *feed) reportError(err error, u *update.Update) bool {
	handler := f.errorHandler()
	if handler == nil {
		return false
	}
	handler(err, u)
	return true
}

// emit publishes one batch: first as a whole onto the batch feed, then each
// update in batch order onto the individual feed and the broadcast tap.
// The batch feed may have no consumer, so it drops its oldest entry rather
// than stall acquisition. Emission aborts when ctx is cancelled.
func (f *feed) emit(ctx context.Context, batch []update.Update) {
	if len(batch) == 0 {
		return
	}

	select {
	case f.batches <- batch:
	default:
		select {
		case <-f.batches:
		default:
		}
		select {
		case f.batches <- batch:
		default:
		}
	}

	for _, u := range batch {
		_ = f.tap.Broadcast(ctx, broadcast.Message[update.Update]{Data: u})

		select {
		case f.updates <- u:
		case <-ctx.Done():
			return
		}
	}
}
