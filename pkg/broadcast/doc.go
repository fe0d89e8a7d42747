// Package broadcast provides a generic in-memory pub/sub fan-out with
// non-blocking delivery.
//
// Two interfaces make up the API:
//   - Broadcaster[T]: sends messages to every active subscriber
//   - Subscriber[T]: receives broadcast messages
//
// The in-memory implementation favors liveness over completeness: each
// subscriber owns a buffered channel, and when that buffer is full new
// messages are dropped for that subscriber rather than blocking the
// broadcaster or the other subscribers.
//
// # Usage
//
//	broadcaster := broadcast.NewMemoryBroadcaster[string](100)
//	defer broadcaster.Close()
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	sub := broadcaster.Subscribe(ctx)
//	go func() {
//	    for msg := range sub.Receive(ctx) {
//	        fmt.Println(msg.Data)
//	    }
//	}()
//
//	broadcaster.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//
// Subscriptions are cleaned up automatically when their context is
// cancelled; Close shuts down every subscriber channel. All operations on
// closed resources are safe and never panic.
package broadcast
