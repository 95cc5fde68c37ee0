package event

import (
	"context"
	"log/slog"
	"sync"
)

// Lifecycle event names.
const (
	BeforeExecute = "application.before_execute"
	AfterExecute  = "application.after_execute"
	BeforeRespond = "application.before_respond"
	AfterRespond  = "application.after_respond"
	AfterCompress = "application.after_compress"
	Error         = "application.error"
)

// Event is a named notification passed to listeners.
type Event interface {
	Name() string
	StopPropagation()
	IsStopped() bool
}

// ApplicationEvent is published by the application shell. Application holds
// the publishing application.
type ApplicationEvent struct {
	Application any
	name        string
	stopped     bool
}

// NewApplicationEvent creates an event for app.
func NewApplicationEvent(name string, app any) *ApplicationEvent {
	return &ApplicationEvent{name: name, Application: app}
}

func (e *ApplicationEvent) Name() string     { return e.name }
func (e *ApplicationEvent) StopPropagation() { e.stopped = true }
func (e *ApplicationEvent) IsStopped() bool  { return e.stopped }

// ErrorEvent carries the error raised by the execution routine.
type ErrorEvent struct {
	ApplicationEvent
	Err error
}

// NewErrorEvent creates an Error event for app.
func NewErrorEvent(err error, app any) *ErrorEvent {
	return &ErrorEvent{
		ApplicationEvent: ApplicationEvent{name: Error, Application: app},
		Err:              err,
	}
}

// Listener handles a dispatched event.
type Listener func(ctx context.Context, e Event)

// Dispatcher publishes events to listeners and returns the event after all
// listeners ran.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) Event
}

// Bus is an in-memory Dispatcher. Listeners run synchronously in
// subscription order until one stops propagation.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[string][]Listener)}
}

// Subscribe registers l for events named name.
func (b *Bus) Subscribe(name string, l Listener) {
	if l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[name] = append(b.listeners[name], l)
}

// HasListeners reports whether anything is subscribed to name.
func (b *Bus) HasListeners(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name]) > 0
}

// Dispatch runs the listeners subscribed to e.Name().
func (b *Bus) Dispatch(ctx context.Context, e Event) Event {
	b.mu.RLock()
	listeners := b.listeners[e.Name()]
	b.mu.RUnlock()

	for _, l := range listeners {
		if e.IsStopped() {
			break
		}
		l(ctx, e)
	}
	return e
}

// LogErrors returns a listener that logs ErrorEvent payloads at Error level.
func LogErrors(log *slog.Logger) Listener {
	return func(ctx context.Context, e Event) {
		ee, ok := e.(*ErrorEvent)
		if !ok || ee.Err == nil {
			return
		}
		log.ErrorContext(ctx, "application error", slog.String("event", e.Name()), slog.Any("error", ee.Err))
	}
}
