package controller

import (
	"context"
	"reflect"
)

// Invocable is the resolved, ready-to-call form of a controller.
type Invocable func(ctx context.Context) error

// Invoker is implemented by values that can be called directly.
type Invoker interface {
	Invoke(ctx context.Context) error
}

// Controller is implemented by classes routed to by name. Execute is their
// entry point.
type Controller interface {
	Execute(ctx context.Context) error
}

// Action pairs a class name or an instance with the method to call on it.
type Action struct {
	// Target is a registered class name (string) or an instance.
	Target any
	Method string
}

// Callable converts v into an Invocable when it is one of:
// func(context.Context) error, func(context.Context), func() error, func(),
// an Invocable or an Invoker.
func Callable(v any) (Invocable, bool) {
	switch fn := v.(type) {
	case nil:
		return nil, false
	case Invocable:
		return fn, fn != nil
	case func(context.Context) error:
		return fn, fn != nil
	case func(context.Context):
		if fn == nil {
			return nil, false
		}
		return func(ctx context.Context) error {
			fn(ctx)
			return nil
		}, true
	case func() error:
		if fn == nil {
			return nil, false
		}
		return func(context.Context) error { return fn() }, true
	case func():
		if fn == nil {
			return nil, false
		}
		return func(context.Context) error {
			fn()
			return nil
		}, true
	case Invoker:
		if isNilPointer(fn) {
			return nil, false
		}
		return fn.Invoke, true
	}
	return nil, false
}

// bindMethod looks up an exported method on target and converts it.
func bindMethod(target any, method string) (Invocable, bool) {
	if target == nil || method == "" || isNilPointer(target) {
		return nil, false
	}
	m := reflect.ValueOf(target).MethodByName(method)
	if !m.IsValid() {
		return nil, false
	}
	return Callable(m.Interface())
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
