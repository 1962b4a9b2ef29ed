package evbus

import (
	"errors"
	"slices"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// errSkip is returned by an adapted method that cannot accept the payload it
// was fired with. Fire treats it as "not callable" and moves on.
var errSkip = errors.New("evbus: handler cannot accept payload")

type subscription struct {
	handler string
	scope   any
	fn      HandlerFunc
}

// call runs the subscription. ok is false when the scope has nothing
// callable under the handler name.
func (s subscription) call(payload any) (ok bool, err error) {
	fn := s.fn
	if r, dynamic := s.scope.(Resolver); dynamic && fn == nil {
		fn, _ = r.ResolveHandler(s.handler)
	}
	if fn == nil {
		return false, nil
	}
	err = fn(payload)
	if err == errSkip {
		return false, nil
	}
	return true, err
}

func (s subscription) matches(handler string, scope any) bool {
	return s.handler == handler && sameScope(s.scope, scope)
}

// Bus is a registry of event subscriptions. The zero value is an empty bus
// ready to use.
type Bus struct {
	l    sync.RWMutex
	subs map[string][]subscription

	logger  *zap.Logger
	policy  ErrorPolicy
	metrics *metrics
}

// New returns an empty bus configured by opts.
func New(opts ...Option) *Bus {
	b := &Bus{subs: map[string][]subscription{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBus = New()

// Default returns the process-wide bus used by the package level functions.
func Default() *Bus { return defaultBus }

// Subscribe registers handler on scope for the event name on the default
// bus.
func Subscribe(name, handler string, scope any) error {
	return defaultBus.Subscribe(name, handler, scope)
}

// SubscribeFunc binds fn on the default bus. See Bus.SubscribeFunc.
func SubscribeFunc(name, handler string, scope any, fn HandlerFunc) error {
	return defaultBus.SubscribeFunc(name, handler, scope, fn)
}

// Unsubscribe removes subscriptions from the default bus. See
// Bus.Unsubscribe.
func Unsubscribe(name, handler string, scope any) error {
	return defaultBus.Unsubscribe(name, handler, scope)
}

// Fire invokes every handler subscribed to name on the default bus.
func Fire(name string, payload any) error {
	return defaultBus.Fire(name, payload)
}

func (b *Bus) log() *zap.Logger {
	if b.logger == nil {
		return zap.NewNop()
	}
	return b.logger
}

func (b *Bus) init() {
	if b.subs == nil {
		b.subs = map[string][]subscription{}
	}
}

// Subscribe registers the scope's handler for the event name. The handler
// is looked up on scope as a method (see Resolver for the alternative); a
// scope without such a method is kept on the bus and silently skipped when
// the event fires. Subscribing the same handler and scope to a name twice
// is a no-op.
func (b *Bus) Subscribe(name, handler string, scope any) error {
	if err := checkSubscribe("subscribe", orNil(name), orNil(handler), scope); err != nil {
		return err
	}
	b.subscribe(name, handler, scope)
	return nil
}

func (b *Bus) subscribe(name, handler string, scope any) {
	var fn HandlerFunc
	if !isResolver(scope) {
		fn = bindMethod(scope, handler)
	}
	b.add(name, subscription{handler: handler, scope: scope, fn: fn})
}

// SubscribeFunc is like Subscribe but binds fn directly instead of looking
// the handler up on scope. handler and scope still identify the
// subscription for de-duplication and Unsubscribe.
func (b *Bus) SubscribeFunc(name, handler string, scope any, fn HandlerFunc) error {
	if err := checkSubscribe("subscribe", orNil(name), orNil(handler), scope); err != nil {
		return err
	}
	if fn == nil {
		return invalid("subscribe", ErrMissingHandler)
	}
	b.add(name, subscription{handler: handler, scope: scope, fn: fn})
	return nil
}

func (b *Bus) add(name string, sub subscription) {
	b.l.Lock()
	defer b.l.Unlock()
	b.init()

	list := b.subs[name]
	for _, s := range list {
		if s.matches(sub.handler, sub.scope) {
			b.log().Debug("already subscribed",
				zap.String("event", name),
				zap.String("handler", sub.handler))
			return
		}
	}
	b.subs[name] = append(list, sub)
	b.metrics.setSubscriptions(name, len(b.subs[name]))
	b.log().Debug("subscribed",
		zap.String("event", name),
		zap.String("handler", sub.handler),
		zap.Bool("callable", sub.fn != nil || isResolver(sub.scope)))
}

func isResolver(scope any) bool {
	_, ok := scope.(Resolver)
	return ok
}

// Unsubscribe removes subscriptions for the event name. An empty handler
// removes every subscription for name. Otherwise every subscription using
// handler is removed, restricted to scope when scope is non-nil.
func (b *Bus) Unsubscribe(name, handler string, scope any) error {
	if err := checkUnsubscribe("unsubscribe", orNil(name)); err != nil {
		return err
	}
	b.remove(name, handler, handler == "", scope)
	return nil
}

// remove drops every subscription for name when all is set, otherwise the
// ones using handler, restricted to scope when scope is non-nil.
func (b *Bus) remove(name, handler string, all bool, scope any) {
	b.l.Lock()
	defer b.l.Unlock()

	list, ok := b.subs[name]
	if !ok {
		return
	}
	if all {
		delete(b.subs, name)
		b.metrics.setSubscriptions(name, 0)
		b.log().Debug("unsubscribed all", zap.String("event", name), zap.Int("removed", len(list)))
		return
	}

	kept := slices.DeleteFunc(slices.Clone(list), func(s subscription) bool {
		return s.handler == handler && (scope == nil || sameScope(s.scope, scope))
	})
	if len(kept) == 0 {
		delete(b.subs, name)
	} else {
		b.subs[name] = kept
	}
	b.metrics.setSubscriptions(name, len(kept))
	b.log().Debug("unsubscribed",
		zap.String("event", name),
		zap.String("handler", handler),
		zap.Int("removed", len(list)-len(kept)))
}

// Fire invokes, in subscription order, every handler subscribed to name,
// passing payload as the sole argument. The handlers called are those
// subscribed when Fire was entered; changes made by a handler take effect
// on the next Fire.
//
// A name with no subscriptions is a no-op. Handler panics are not
// recovered. Handler errors are treated according to the bus ErrorPolicy:
// with StopOnError the first error ends the pass and is returned as is.
func (b *Bus) Fire(name string, payload any) error {
	b.l.RLock()
	snapshot := slices.Clone(b.subs[name])
	b.l.RUnlock()

	b.metrics.fired(name)
	if len(snapshot) == 0 {
		return nil
	}
	b.log().Debug("firing", zap.String("event", name), zap.Int("subscriptions", len(snapshot)))

	var errs error
	for _, sub := range snapshot {
		ok, err := sub.call(payload)
		if !ok {
			continue
		}
		b.metrics.called(name, err)
		if err == nil {
			continue
		}
		if b.policy == StopOnError {
			return err
		}
		errs = multierr.Append(errs, err)
	}
	return errs
}

// Subscribed reports whether handler on scope is subscribed to name.
func (b *Bus) Subscribed(name, handler string, scope any) bool {
	b.l.RLock()
	defer b.l.RUnlock()
	return slices.ContainsFunc(b.subs[name], func(s subscription) bool {
		return s.matches(handler, scope)
	})
}

// Count returns the number of subscriptions for name.
func (b *Bus) Count(name string) int {
	b.l.RLock()
	defer b.l.RUnlock()
	return len(b.subs[name])
}

// Names returns the sorted event names that have at least one
// subscription.
func (b *Bus) Names() []string {
	b.l.RLock()
	defer b.l.RUnlock()
	names := make([]string, 0, len(b.subs))
	for name, list := range b.subs {
		if len(list) > 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Reset drops every subscription.
func (b *Bus) Reset() {
	b.l.Lock()
	defer b.l.Unlock()
	for name := range b.subs {
		b.metrics.setSubscriptions(name, 0)
	}
	b.subs = map[string][]subscription{}
	b.log().Debug("reset")
}
