// Package evbus implements a small synchronous publish/subscribe event bus.
// Code subscribes a named handler on some owning value (the scope) to an
// event name, and other code fires that name to run every subscribed
// handler with an optional payload.
//
// # Subscribe to events
//
// A handler is a method on the scope, looked up by name when subscribing:
//
//	type Greeter struct{ greeting string }
//
//	func (g *Greeter) OnPing(payload any) {
//	    fmt.Println(g.greeting, payload)
//	}
//
//	bus := evbus.New()
//	g := &Greeter{greeting: "hello"}
//	err := bus.Subscribe("ping", "OnPing", g)
//
// The lower-camel "onPing" finds OnPing as well. Methods may take no
// argument or one argument of any type the payload is assignable to, and
// may return an error. Subscribing the same handler and scope to a name
// again does nothing.
//
// Closures can be bound directly, keyed by a handler name and scope:
//
//	err := bus.SubscribeFunc("ping", "log", g, func(payload any) error {
//	    return nil
//	})
//
// # Fire events
//
//	err := bus.Fire("ping", map[string]int{"n": 1})
//
// Handlers run on the calling goroutine in the order they were subscribed.
// Fire works from a copy of the subscription list taken when it starts, so
// handlers may subscribe and unsubscribe freely. By default the first
// handler error stops the pass and is returned; see WithErrorPolicy. Panics
// are never recovered.
//
// # Unsubscribe
//
//	bus.Unsubscribe("ping", "OnPing", g) // just g's OnPing
//	bus.Unsubscribe("ping", "OnPing", nil) // OnPing on every scope
//	bus.Unsubscribe("ping", "", nil) // everything on "ping"
//
// A process-wide bus is available through the package level Subscribe,
// Unsubscribe and Fire functions.
package evbus
