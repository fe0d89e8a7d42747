// Package fetcher turns the remote event source into a reliable internal
// update feed. It defines the Fetcher contract and two acquisition
// strategies:
//
//   - LongPolling pulls update batches continuously, advancing a cursor and
//     recovering from transient failures with exponential backoff. When the
//     platform mandates a wait (rate limiting), the fetcher honors it
//     internally; callers never manage that wait themselves.
//   - Webhook registers a push-delivery target once and forwards externally
//     received updates onto the same feeds, either through Deliver or
//     through the bundled HTTP handler.
//
// Every fetcher exposes two output feeds — one emitting updates
// individually, one emitting them in received batches — plus a broadcast
// tap for additional observers. Batch order is preserved on the individual
// feed.
//
// # Lifecycle
//
// Start is a blocking operation that runs until the context is cancelled or
// Stop is called. Use Run for the errgroup pattern, or call Start in a
// goroutine:
//
//	f, err := fetcher.NewLongPolling(client,
//	    fetcher.WithPollTimeout(30*time.Second),
//	    fetcher.WithLongPollingLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	f.OnError(func(err error, u *update.Update) {
//	    logger.Error("fetch failed", "error", err)
//	})
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(f.Run(ctx))
//
// Once Stop returns, no further updates are emitted until Start is called
// again.
//
// # Failure policy
//
// Transient failures (transport errors, rate limits, 5xx rejections) are
// retried internally and only reported through the error hook. Non-transient
// failures stop the loop: they are reported to the hook when one is
// installed, otherwise Start returns the error.
package fetcher
