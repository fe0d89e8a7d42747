// Package dispatcher matches incoming updates against an ordered set of
// handler scopes and invokes at most one handler per update.
//
// A Scope couples eligibility (update kinds), a predicate, an optional
// compiled text pattern, and a handler. Scopes live in a Registry that is
// mutable only by appending and by removal; evaluation walks the registry in
// reverse insertion order, so the most recently registered scope has the
// highest priority. Late-bound overlays (an attached menu, a conversation
// step) therefore shadow earlier general-purpose handlers.
//
// Gate scopes claim an update silently: when a gate's predicate matches, the
// scan stops and no handler runs. This is the seam external conversation
// flows use to absorb updates.
//
// The Dispatcher consumes a fetcher's update feed strictly one update at a
// time; a handler completes before the next update is considered. Handler
// failures are routed to the error hook when one is installed, otherwise
// they stop the engine.
//
// # Basic Usage
//
//	d := dispatcher.New(
//	    dispatcher.WithSource(f),
//	    dispatcher.WithLogger(logger),
//	)
//
//	d.Handle(dispatcher.Scope{
//	    Name:    "start",
//	    Types:   []update.Type{update.TypeMessage},
//	    Pattern: regexp.MustCompile(`^/start$`),
//	    Handler: func(ctx context.Context, u update.Update) error {
//	        return greet(ctx, u)
//	    },
//	})
//
//	g.Go(d.Run(ctx))
//
// Pattern captures are exposed to the handler through the context, see
// Matches.
package dispatcher
