// Package telegram is the boundary to the remote event source. It defines the
// Client interface the fetchers depend on — pulling update batches, managing
// the push-delivery registration, and resolving the bot's own identity — and
// ships BotAPI, a default HTTP implementation of that interface.
//
// The error taxonomy distinguishes the failure classes the fetchers react to:
//
//   - TransportError: network or decoding failure, transient and retryable.
//   - APIError: the platform rejected the call. When RetryAfter is set the
//     failure is a rate limit and retryable after the mandated wait;
//     otherwise it is non-transient.
//   - ErrUnauthorized: credentials rejected, always fatal.
//
// Use IsTransient to classify an error and RetryAfter to extract a mandated
// wait duration.
//
// # Basic Usage
//
//	client, err := telegram.NewBotAPI(token,
//	    telegram.WithHTTPClient(httpClient),
//	    telegram.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//
//	updates, err := client.GetUpdates(ctx, telegram.GetUpdatesParams{
//	    Offset:  offset,
//	    Timeout: 30,
//	})
package telegram
