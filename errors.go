package evbus

import (
	"errors"
	"fmt"
)

var (
	ErrMissingName        = errors.New("no event name specified")
	ErrMissingHandler     = errors.New("no event handler specified")
	ErrMissingScope       = errors.New("no event handler scope specified")
	ErrInvalidNameType    = errors.New("event name must be a string")
	ErrInvalidHandlerType = errors.New("event handler must be a string naming the method to invoke")
)

// ValidationError is returned by Subscribe and Unsubscribe when the caller
// supplied bad arguments. Err is always one of the Err* sentinels above, so
// errors.Is works against the sentinel directly.
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("evbus: %s: invalid parameter: %s", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(op string, err error) error {
	return &ValidationError{Op: op, Err: err}
}

// checkSubscribe validates subscribe arguments. A nil argument is missing.
// All presence checks run before any type check.
func checkSubscribe(op string, name, handler, scope any) error {
	if name == nil {
		return invalid(op, ErrMissingName)
	}
	if handler == nil {
		return invalid(op, ErrMissingHandler)
	}
	if scope == nil {
		return invalid(op, ErrMissingScope)
	}
	if _, ok := name.(string); !ok {
		return invalid(op, ErrInvalidNameType)
	}
	if _, ok := handler.(string); !ok {
		return invalid(op, ErrInvalidHandlerType)
	}
	return nil
}

// checkUnsubscribe requires name to be present and a string.
func checkUnsubscribe(op string, name any) error {
	if _, ok := name.(string); !ok {
		return invalid(op, ErrMissingName)
	}
	return nil
}

// orNil maps the typed API's empty string to a missing argument.
func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
