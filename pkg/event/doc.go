// Package event carries the application lifecycle notifications.
//
// The application shell publishes a fixed set of named events around its
// execution routine. Listeners subscribe to a name on a Bus; the shell
// itself only depends on the Dispatcher interface and treats a missing
// dispatcher as "nobody is listening".
//
//	bus := event.NewBus()
//	bus.Subscribe(event.Error, func(ctx context.Context, e event.Event) {
//	    if ee, ok := e.(*event.ErrorEvent); ok {
//	        log.ErrorContext(ctx, "execution failed", "error", ee.Err)
//	    }
//	})
package event
