package internal

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/dmitrymomot/appshell/pkg/event"
	"github.com/dmitrymomot/appshell/pkg/registry"
)

const panicStackSize = 4096

// State is the lifecycle position of an application.
type State int

const (
	StateIdle State = iota
	StateExecuting
	StateResponding
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExecuting:
		return "executing"
	case StateResponding:
		return "responding"
	case StateClosed:
		return "closed"
	}
	return "unknown(" + strconv.Itoa(int(s)) + ")"
}

// Application is the execution shell shared by the web and CLI variants.
// It owns the configuration, the logger and the event dispatcher, and runs
// the execution routine between the before/after events.
type Application struct {
	config     *registry.Registry
	logger     *slog.Logger
	dispatcher event.Dispatcher
	execute    ExecuteFunc
	closer     func(code int)
	clock      func() time.Time

	// self is the outermost application, used as event payload and context value.
	self  any
	state State
	err   error
}

// NewApplication returns a base application. Close exits the process
// unless WithCloser is given.
func NewApplication(opts ...Option) *Application {
	return newApplication(newSettings(opts))
}

func newApplication(s *settings) *Application {
	a := &Application{
		config:     s.config,
		logger:     s.logger,
		dispatcher: s.dispatcher,
		execute:    s.execute,
		closer:     s.closer,
		clock:      s.clock,
	}
	if a.closer == nil {
		a.closer = os.Exit
	}
	a.self = a
	a.stampExecution()
	return a
}

func (a *Application) stampExecution() {
	now := a.clock()
	a.config.Set("execution.datetime", now.UTC().Format(time.DateTime))
	a.config.Set("execution.timestamp", now.Unix())
	a.config.Set("execution.microtimestamp", float64(now.UnixMicro())/1e6)
}

// Execute runs the execution routine. Errors and panics are logged and
// dispatched as an application.error event; they never reach the caller.
func (a *Application) Execute(ctx context.Context) {
	a.run(ctx, nil)
}

// run wraps the execution routine and any follow-up steps in one failure
// boundary.
func (a *Application) run(ctx context.Context, then func(context.Context) error) {
	ctx = withApplication(ctx, a.self)
	a.state = StateExecuting
	a.err = nil

	err := a.guard(ctx, func(ctx context.Context) error {
		a.Dispatch(ctx, event.NewApplicationEvent(event.BeforeExecute, a.self))

		if a.execute != nil {
			if err := a.execute(ctx); err != nil {
				return err
			}
		}

		a.Dispatch(ctx, event.NewApplicationEvent(event.AfterExecute, a.self))

		if then != nil && a.state != StateClosed {
			return then(ctx)
		}
		return nil
	})
	if err != nil {
		a.err = err
		a.logger.ErrorContext(ctx, "application execution failed", slog.Any("error", err))
		a.Dispatch(ctx, event.NewErrorEvent(err, a.self))
	}
}

func (a *Application) guard(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, panicStackSize)
			stack = stack[:runtime.Stack(stack, false)]
			err = &PanicError{Value: r, Stack: stack}
		}
	}()
	return fn(ctx)
}

// Dispatch sends e to the dispatcher, if there is one.
func (a *Application) Dispatch(ctx context.Context, e event.Event) event.Event {
	if a.dispatcher == nil {
		return e
	}
	return a.dispatcher.Dispatch(ctx, e)
}

// Close ends the application with the exit code.
func (a *Application) Close(code int) {
	a.state = StateClosed
	a.closer(code)
}

// State returns the current lifecycle state.
func (a *Application) State() State {
	return a.state
}

// Err returns the error of the last Execute, if it failed.
func (a *Application) Err() error {
	return a.err
}

// Get returns a configuration value or def.
func (a *Application) Get(key string, def any) any {
	return a.config.Get(key, def)
}

// Set stores a configuration value and returns the previous one.
func (a *Application) Set(key string, value any) any {
	return a.config.Set(key, value)
}

// Config returns the configuration registry.
func (a *Application) Config() *registry.Registry {
	return a.config
}

// SetConfiguration replaces the configuration registry.
func (a *Application) SetConfiguration(reg *registry.Registry) *Application {
	if reg != nil {
		a.config = reg
	}
	return a
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// SetLogger replaces the logger.
func (a *Application) SetLogger(l *slog.Logger) *Application {
	if l != nil {
		a.logger = l
	}
	return a
}

// Dispatcher returns the event dispatcher, which may be nil.
func (a *Application) Dispatcher() event.Dispatcher {
	return a.dispatcher
}

// SetDispatcher replaces the event dispatcher.
func (a *Application) SetDispatcher(d event.Dispatcher) *Application {
	a.dispatcher = d
	return a
}
