// Package bus implements the process-wide event bus that sequence lifecycle
// events and beat events share.
//
// # Basic Usage
//
//	b := bus.New(logger)
//	unsubscribe := b.Subscribe("sequence:*", func(topic string, event bus.Event) {
//	    log.Println(topic, event)
//	})
//	defer unsubscribe()
//
//	b.Emit("sequence:started", bus.Event{"requestId": "r-1"})
//
// # Wildcards
//
// A subscription pattern ending in "*" matches any topic sharing the prefix
// before the "*". All other patterns require an exact match.
//
// # Error Isolation
//
// A listener that panics does not stop dispatch to the remaining listeners,
// and the failure is never re-emitted on the originating topic - it is
// reported on bus.ListenerErrorTopic instead, so publishers can never be
// broken by a misbehaving subscriber.
//
// # Reserved Prefixes
//
// "sequence:", "movement:", and "beat:" are reserved for lifecycle events.
// Callers that register beat events under those prefixes are expected to be
// rejected by the caller's own registration logic, not by this package.
package bus
