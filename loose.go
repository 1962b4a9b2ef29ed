package evbus

type looseBus struct {
	b *Bus
}

// Loose returns a view of b whose methods accept untyped arguments, for
// callers that build subscriptions from dynamic data. A nil argument stands
// for an omitted one; the empty string is an ordinary name here. Subscribe
// arguments of the wrong type fail with ErrInvalidNameType or
// ErrInvalidHandlerType.
func Loose(b *Bus) interface {
	Subscribe(name, handler, scope any) error

	// Unsubscribe fails with ErrMissingName unless name is a string. A
	// handler that is not a string matches no subscriptions.
	Unsubscribe(name, handler, scope any) error

	// Fire never fails on its name: anything but a string simply matches
	// no subscriptions.
	Fire(name, payload any) error
} {
	return &looseBus{b: b}
}

func (l *looseBus) Subscribe(name, handler, scope any) error {
	if err := checkSubscribe("subscribe", name, handler, scope); err != nil {
		return err
	}
	l.b.subscribe(name.(string), handler.(string), scope)
	return nil
}

func (l *looseBus) Unsubscribe(name, handler, scope any) error {
	if err := checkUnsubscribe("unsubscribe", name); err != nil {
		return err
	}
	if handler == nil {
		l.b.remove(name.(string), "", true, nil)
		return nil
	}
	h, ok := handler.(string)
	if !ok {
		return nil
	}
	l.b.remove(name.(string), h, false, scope)
	return nil
}

func (l *looseBus) Fire(name, payload any) error {
	s, ok := name.(string)
	if !ok {
		return nil
	}
	return l.b.Fire(s, payload)
}
