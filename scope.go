package evbus

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// HandlerFunc handles a fired event. A returned error is handed back to the
// caller of Fire according to the bus's ErrorPolicy.
type HandlerFunc func(payload any) error

// Resolver may be implemented by a scope that wants to look up its handlers
// itself instead of exposing them as methods. ResolveHandler is consulted on
// every Fire, so the set of handlers it knows about may change over time.
type Resolver interface {
	ResolveHandler(name string) (HandlerFunc, bool)
}

// Methods is a scope whose handlers are looked up by name in the map.
type Methods map[string]HandlerFunc

func (m Methods) ResolveHandler(name string) (HandlerFunc, bool) {
	fn, ok := m[name]
	return fn, ok && fn != nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// bindMethod finds the method called name on scope, falling back to the
// name with its first letter upper-cased so "onPing" finds OnPing. It
// returns nil when scope has no usable method of that name.
func bindMethod(scope any, name string) HandlerFunc {
	v := reflect.ValueOf(scope)
	if !v.IsValid() {
		return nil
	}
	m := v.MethodByName(name)
	if !m.IsValid() {
		if exported := exportedName(name); exported != name {
			m = v.MethodByName(exported)
		}
	}
	if !m.IsValid() {
		return nil
	}
	return adaptMethod(m)
}

func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// adaptMethod wraps a bound method as a HandlerFunc. Accepted shapes are
// func(), func() error, func(T) and func(T) error.
func adaptMethod(m reflect.Value) HandlerFunc {
	t := m.Type()
	if t.IsVariadic() || t.NumIn() > 1 || t.NumOut() > 1 {
		return nil
	}
	if t.NumOut() == 1 && t.Out(0) != errorType {
		return nil
	}

	if t.NumIn() == 0 {
		return func(any) error {
			return callResult(m.Call(nil))
		}
	}

	in := t.In(0)
	return func(payload any) error {
		var arg reflect.Value
		switch {
		case payload == nil:
			arg = reflect.Zero(in)
		case reflect.TypeOf(payload).AssignableTo(in):
			arg = reflect.ValueOf(payload)
		default:
			return errSkip
		}
		return callResult(m.Call([]reflect.Value{arg}))
	}
}

func callResult(out []reflect.Value) error {
	if len(out) == 0 || out[0].IsNil() {
		return nil
	}
	return out[0].Interface().(error)
}

// sameScope reports whether a and b are the same scope. Comparable values
// compare with ==; maps, slices, funcs and chans compare by what they point
// at.
func sameScope(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return equalComparable(a, b)
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	// non-comparable structs and arrays have no identity of their own
	return false
}

// equalComparable is a == b for values of a comparable type. Interface
// fields holding a map, slice or func make == panic; such values are never
// the same scope.
func equalComparable(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
