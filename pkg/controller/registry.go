package controller

import (
	"fmt"
	"reflect"
	"sync"
)

var errorType = reflect.TypeFor[error]()

// Registry maps class and function names to factories. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]reflect.Value
	funcs   map[string]Invocable
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string]reflect.Value),
		funcs:   make(map[string]Invocable),
	}
}

// RegisterClass registers a class under name. ctor is either a constructor
// function returning the instance (optionally with an error) or a typed nil
// pointer such as (*HomeController)(nil), which is instantiated with
// reflect.New.
//
// Constructors with parameters are accepted here and rejected at resolution
// time, so the error names the route that needed them.
func (r *Registry) RegisterClass(name string, ctor any) error {
	if name == "" || ctor == nil {
		return fmt.Errorf("%w: class %q", ErrInvalidRegistration, name)
	}

	v := reflect.ValueOf(ctor)
	switch v.Kind() {
	case reflect.Func:
		t := v.Type()
		if t.NumOut() == 0 || t.NumOut() > 2 || (t.NumOut() == 2 && t.Out(1) != errorType) {
			return fmt.Errorf("%w: constructor of %q must return (T) or (T, error)", ErrInvalidRegistration, name)
		}
	case reflect.Pointer:
		if !v.IsNil() {
			return fmt.Errorf("%w: prototype of %q must be a nil pointer", ErrInvalidRegistration, name)
		}
	default:
		return fmt.Errorf("%w: class %q must be a constructor or a nil pointer", ErrInvalidRegistration, name)
	}

	r.mu.Lock()
	r.classes[name] = v
	r.mu.Unlock()
	return nil
}

// MustRegisterClass is like RegisterClass but panics on error.
func (r *Registry) MustRegisterClass(name string, ctor any) {
	if err := r.RegisterClass(name, ctor); err != nil {
		panic(err)
	}
}

// RegisterFunc registers a named function. fn must be accepted by Callable.
func (r *Registry) RegisterFunc(name string, fn any) error {
	call, ok := Callable(fn)
	if name == "" || !ok {
		return fmt.Errorf("%w: function %q", ErrInvalidRegistration, name)
	}

	r.mu.Lock()
	r.funcs[name] = call
	r.mu.Unlock()
	return nil
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func (r *Registry) MustRegisterFunc(name string, fn any) {
	if err := r.RegisterFunc(name, fn); err != nil {
		panic(err)
	}
}

// HasClass reports whether name is a registered class.
func (r *Registry) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

func (r *Registry) function(name string) (Invocable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// instantiate builds a fresh instance of the named class.
func (r *Registry) instantiate(name string) (any, error) {
	r.mu.RLock()
	ctor, ok := r.classes[name]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrClassNotFound
	}

	if ctor.Kind() == reflect.Pointer {
		return reflect.New(ctor.Type().Elem()).Interface(), nil
	}

	if ctor.Type().NumIn() > 0 {
		return nil, ErrConstructorArguments
	}

	out := ctor.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
