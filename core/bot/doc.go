// Package bot wires the API client, an update fetcher, and the dispatch
// engine into a single application handle.
//
// Basic usage:
//
//	var cfg bot.Config
//	config.MustLoad(&cfg)
//
//	b, err := bot.New(cfg, bot.WithLogger(log))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	b.OnCommand("start", func(ctx context.Context, u update.Update) error {
//		// greet the user
//		return nil
//	})
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := b.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Identity-dependent registrations
//
// OnMention needs the bot's own handle, which is resolved asynchronously
// when Start launches. A registration made while resolution is in flight is
// queued and applied, in registration order, once the identity is known.
// A registration made before Start is dropped with a warning.
//
// # One-shot conversation steps
//
// NextStep registers a rule for the user's next message in a chat, scoped
// to the two message IDs following a reference message. The rule removes
// itself after firing once:
//
//	b.OnCommand("ask", func(ctx context.Context, u update.Update) error {
//		// send the question, then wait for the answer
//		_, err := b.NextStep(u.Msg(), handleAnswer)
//		return err
//	})
package bot
