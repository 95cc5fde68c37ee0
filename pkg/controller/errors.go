package controller

import (
	"errors"
	"fmt"
)

var (
	ErrClassNotFound        = errors.New("controller: class not found")
	ErrConstructorArguments = errors.New("controller: constructor requires arguments")
	ErrNotCallable          = errors.New("controller: not callable")
	ErrUnresolvable         = errors.New("controller: cannot resolve controller")
	ErrInvalidRegistration  = errors.New("controller: invalid registration")
)

// UnresolvableError reports a route whose controller could not be turned into
// an Invocable. Path is the matched request path; Class is set when a
// registered class was involved.
type UnresolvableError struct {
	Path  string
	Class string
	Err   error
}

func (e *UnresolvableError) Error() string {
	switch {
	case errors.Is(e.Err, ErrConstructorArguments):
		return fmt.Sprintf("controller `%s` has required constructor arguments, cannot instantiate the class", e.Class)
	case errors.Is(e.Err, ErrClassNotFound):
		return fmt.Sprintf("controller class `%s` for route `%s` is not registered", e.Class, e.Path)
	case errors.Is(e.Err, ErrNotCallable) && e.Class != "":
		return fmt.Sprintf("controller `%s` for route `%s` is not callable", e.Class, e.Path)
	case errors.Is(e.Err, ErrNotCallable):
		return fmt.Sprintf("controller for route `%s` is not callable", e.Path)
	}
	if e.Err != nil && !errors.Is(e.Err, ErrUnresolvable) {
		return fmt.Sprintf("cannot resolve controller for route `%s`: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("cannot resolve controller for route `%s`", e.Path)
}

func (e *UnresolvableError) Unwrap() error {
	return e.Err
}
