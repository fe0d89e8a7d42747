// Package async implements a small Future pattern on top of Go generics.
//
// Future[T] represents the result of an asynchronous computation: a typed
// value plus an error. It provides blocking waits (Await), bounded waits
// (AwaitWithTimeout), and non-blocking completion checks (IsComplete).
//
// # Usage
//
//	future := async.Go(ctx, func(ctx context.Context) (*User, error) {
//	    return client.GetMe(ctx)
//	})
//
//	// Do other work...
//
//	user, err := future.Await()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A future started with a pre-cancelled context completes immediately with
// the context's error and never runs the function.
package async
