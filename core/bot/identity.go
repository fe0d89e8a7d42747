package bot

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/GiuseppeFn/televerse/core/logger"
	"github.com/GiuseppeFn/televerse/core/telegram"
	"github.com/GiuseppeFn/televerse/core/update"
	"github.com/GiuseppeFn/televerse/pkg/async"
)

// IdentityState tracks the bot's self-identity resolution.
type IdentityState int32

const (
	// IdentityNotStarted means resolution has not been launched yet.
	// Identity-dependent registrations made in this state are dropped.
	IdentityNotStarted IdentityState = iota

	// IdentityPending means the identity request is in flight.
	// Identity-dependent registrations are queued for replay.
	IdentityPending

	// IdentityCompleted means the identity is known.
	IdentityCompleted
)

func (s IdentityState) String() string {
	switch s {
	case IdentityNotStarted:
		return "not_started"
	case IdentityPending:
		return "pending"
	case IdentityCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// identityResolver resolves the bot's own user record asynchronously and
// gates registrations that need it. Registrations arriving while the request
// is in flight are queued and replayed strictly in enqueue order once it
// completes; the queue is then cleared permanently. Registrations arriving
// before resolution has been launched are dropped with a warning, matching
// the platform's established behavior.
type identityResolver struct {
	logger *slog.Logger

	mu      sync.Mutex
	state   IdentityState
	me      *update.User
	pending []func(me *update.User)
}

func newIdentityResolver(log *slog.Logger) *identityResolver {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &identityResolver{logger: log}
}

func (r *identityResolver) current() (IdentityState, *update.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.me
}

// resolve launches the identity request. Safe to call once per lifecycle;
// a repeated call while pending or completed is a no-op.
func (r *identityResolver) resolve(ctx context.Context, client telegram.Client) *async.Future[*update.User] {
	r.mu.Lock()
	if r.state != IdentityNotStarted {
		r.mu.Unlock()
		return async.Resolved(r.me, nil)
	}
	r.state = IdentityPending
	r.mu.Unlock()

	fut := async.Go(ctx, func(ctx context.Context) (*update.User, error) {
		return client.GetMe(ctx)
	})

	go func() {
		me, err := fut.Await()
		if err != nil {
			r.fail(err)
			return
		}
		r.complete(me)
	}()

	return fut
}

// whenResolved registers immediately when the identity is known, queues the
// registration while resolution is in flight, and drops it with a warning
// when resolution has not been launched.
func (r *identityResolver) whenResolved(register func(me *update.User)) {
	r.mu.Lock()

	switch r.state {
	case IdentityCompleted:
		me := r.me
		r.mu.Unlock()
		register(me)
	case IdentityPending:
		r.pending = append(r.pending, register)
		r.mu.Unlock()
	default:
		r.mu.Unlock()
		r.logger.Warn("identity-dependent registration dropped, bot not started",
			logger.Component("identity"))
	}
}

func (r *identityResolver) complete(me *update.User) {
	r.mu.Lock()
	r.state = IdentityCompleted
	r.me = me
	queued := r.pending
	r.pending = nil
	r.mu.Unlock()

	r.logger.Info("identity resolved",
		logger.Component("identity"),
		logger.Username(me.Username),
		logger.Count("replayed_registrations", len(queued)))

	for _, register := range queued {
		register(me)
	}
}

// fail resets the resolver so a later Start can retry. Queued registrations
// cannot be applied without an identity and are discarded.
func (r *identityResolver) fail(err error) {
	r.mu.Lock()
	r.state = IdentityNotStarted
	dropped := len(r.pending)
	r.pending = nil
	r.mu.Unlock()

	r.logger.Error("identity resolution failed",
		logger.Component("identity"),
		logger.Error(err),
		logger.Count("dropped_registrations", dropped))
}
