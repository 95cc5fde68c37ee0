package controller

import (
	"errors"

	"github.com/dmitrymomot/appshell/pkg/router"
)

// Resolver turns route controllers into Invocables using a Registry.
type Resolver struct {
	registry *Registry
}

// NewResolver returns a resolver backed by reg. A nil reg behaves as an
// empty registry.
func NewResolver(reg *Registry) *Resolver {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Resolver{registry: reg}
}

// Resolve returns the Invocable for route. Failures are *UnresolvableError.
func (r *Resolver) Resolve(route router.ResolvedRoute) (Invocable, error) {
	switch c := route.Controller.(type) {
	case Action:
		return r.resolveAction(route.Path, c)
	case *Action:
		if c != nil {
			return r.resolveAction(route.Path, *c)
		}
	case string:
		return r.resolveName(route.Path, c)
	default:
		if c == nil {
			break
		}
		if fn, ok := Callable(c); ok {
			return fn, nil
		}
		return nil, &UnresolvableError{Path: route.Path, Err: ErrNotCallable}
	}

	return nil, &UnresolvableError{Path: route.Path, Err: ErrUnresolvable}
}

func (r *Resolver) resolveAction(path string, a Action) (Invocable, error) {
	target := a.Target
	class, named := target.(string)
	if named {
		instance, err := r.registry.instantiate(class)
		if err != nil {
			return nil, &UnresolvableError{Path: path, Class: class, Err: err}
		}
		target = instance
	}

	fn, ok := bindMethod(target, a.Method)
	if !ok {
		return nil, &UnresolvableError{Path: path, Class: class, Err: ErrNotCallable}
	}
	return fn, nil
}

func (r *Resolver) resolveName(path, name string) (Invocable, error) {
	if fn, ok := r.registry.function(name); ok {
		return fn, nil
	}

	if !r.registry.HasClass(name) {
		return nil, &UnresolvableError{Path: path, Err: ErrUnresolvable}
	}

	instance, err := r.registry.instantiate(name)
	if err != nil {
		if errors.Is(err, ErrClassNotFound) {
			err = ErrUnresolvable
		}
		return nil, &UnresolvableError{Path: path, Class: name, Err: err}
	}

	ctrl, ok := instance.(Controller)
	if !ok {
		return nil, &UnresolvableError{Path: path, Class: name, Err: ErrNotCallable}
	}
	return ctrl.Execute, nil
}
