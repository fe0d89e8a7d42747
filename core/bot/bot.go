package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/GiuseppeFn/televerse/core/dispatcher"
	"github.com/GiuseppeFn/televerse/core/fetcher"
	"github.com/GiuseppeFn/televerse/core/logger"
	"github.com/GiuseppeFn/televerse/core/telegram"
	"github.com/GiuseppeFn/televerse/core/update"
)

// Bot wires the API client, a fetcher, and the dispatcher into one handle.
// Construct with New; there is no package-level singleton.
type Bot struct {
	cfg        Config
	client     telegram.Client
	fetcher    fetcher.Fetcher
	dispatcher *dispatcher.Dispatcher
	identity   *identityResolver
	logger     *slog.Logger

	errHandler fetcher.ErrorHandler

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a bot from the config. Without overrides it talks to the Bot
// API over HTTP and receives updates via long polling.
func New(cfg Config, opts ...Option) (*Bot, error) {
	b := &Bot{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.client == nil {
		clientOpts := []telegram.BotAPIOption{telegram.WithLogger(b.logger)}
		if cfg.APIBaseURL != "" {
			clientOpts = append(clientOpts, telegram.WithBaseURL(cfg.APIBaseURL))
		}

		client, err := telegram.NewBotAPI(cfg.Token, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("bot: create client: %w", err)
		}
		b.client = client
	}

	if b.fetcher == nil {
		var fetcherOpts []fetcher.LongPollingOption
		if cfg.PollTimeout > 0 {
			fetcherOpts = append(fetcherOpts, fetcher.WithPollTimeout(cfg.PollTimeout))
		}
		if cfg.BufferSize > 0 {
			fetcherOpts = append(fetcherOpts, fetcher.WithLongPollingBufferSize(cfg.BufferSize))
		}
		if cfg.ShutdownTimeout > 0 {
			fetcherOpts = append(fetcherOpts, fetcher.WithLongPollingShutdownTimeout(cfg.ShutdownTimeout))
		}
		fetcherOpts = append(fetcherOpts, fetcher.WithLongPollingLogger(b.logger))

		lp, err := fetcher.NewLongPolling(b.client, fetcherOpts...)
		if err != nil {
			return nil, fmt.Errorf("bot: create fetcher: %w", err)
		}
		b.fetcher = lp
	}

	dispatcherOpts := []dispatcher.Option{
		dispatcher.WithSource(b.fetcher),
		dispatcher.WithLogger(b.logger),
	}
	if cfg.ShutdownTimeout > 0 {
		dispatcherOpts = append(dispatcherOpts, dispatcher.WithShutdownTimeout(cfg.ShutdownTimeout))
	}
	b.dispatcher = dispatcher.New(dispatcherOpts...)

	if b.errHandler != nil {
		b.fetcher.OnError(b.errHandler)
		b.dispatcher.OnError(dispatcher.ErrorHandler(b.errHandler))
	}

	b.identity = newIdentityResolver(b.logger)

	return b, nil
}

// Client returns the API client the bot was built with.
func (b *Bot) Client() telegram.Client { return b.client }

// Fetcher returns the update fetcher the bot consumes.
func (b *Bot) Fetcher() fetcher.Fetcher { return b.fetcher }

// Dispatcher returns the dispatch engine.
func (b *Bot) Dispatcher() *dispatcher.Dispatcher { return b.dispatcher }

// Me returns the resolved identity, or nil before resolution completes.
func (b *Bot) Me() *update.User {
	_, me := b.identity.current()
	return me
}

// IdentityState reports the identity resolver's current state.
func (b *Bot) IdentityState() IdentityState {
	state, _ := b.identity.current()
	return state
}

// OnError installs the hook transport and handler failures are routed to.
// With a hook installed the pipeline continues past failures instead of
// stopping on the first one.
func (b *Bot) OnError(handler fetcher.ErrorHandler) {
	b.fetcher.OnError(handler)
	b.dispatcher.OnError(dispatcher.ErrorHandler(handler))
}

// Start resolves the bot's identity and runs the fetcher and dispatcher
// until the context is cancelled, Stop is called, or a component fails.
// Blocking; run it in a goroutine or via Run with an errgroup.
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.cancel != nil {
		b.mu.Unlock()
		return ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		if b.cancel != nil {
			b.cancel()
			b.cancel = nil
		}
		b.mu.Unlock()
	}()

	b.logger.InfoContext(runCtx, "bot starting", logger.Component("bot"))

	b.identity.resolve(runCtx, b.client)

	eg, egCtx := errgroup.WithContext(runCtx)
	eg.Go(b.fetcher.Run(egCtx))
	eg.Go(b.dispatcher.Run(egCtx))

	err := eg.Wait()
	if err != nil {
		b.logger.Error("bot stopped with error", logger.Component("bot"), logger.Error(err))
		return err
	}

	b.logger.Info("bot stopped", logger.Component("bot"))
	return nil
}

// Stop cancels the running pipeline. The Run adapters inside Start handle
// graceful component shutdown.
func (b *Bot) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel == nil {
		return ErrNotRunning
	}
	b.cancel()
	b.cancel = nil
	return nil
}

// Run provides errgroup compatibility for embedding the bot in a larger
// application.
func (b *Bot) Run(ctx context.Context) func() error {
	return func() error {
		err := b.Start(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
}

// IsRunning reports whether the pipeline is active.
func (b *Bot) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancel != nil
}

// Healthcheck validates the bot and its components.
func (b *Bot) Healthcheck(ctx context.Context) error {
	if !b.IsRunning() {
		return errors.Join(ErrHealthcheckFailed, ErrNotRunning)
	}

	var errs []error
	if hc, ok := b.fetcher.(interface{ Healthcheck(context.Context) error }); ok {
		if err := hc.Healthcheck(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := b.dispatcher.Healthcheck(ctx); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrHealthcheckFailed}, errs...)...)
	}
	return nil
}
