package internal

import "context"

type applicationKey struct{}

func withApplication(ctx context.Context, app any) context.Context {
	return context.WithValue(ctx, applicationKey{}, app)
}

// FromContext returns the web application running the current request.
func FromContext(ctx context.Context) (*WebApplication, bool) {
	app, ok := ctx.Value(applicationKey{}).(*WebApplication)
	return app, ok
}

// CliFromContext returns the running CLI application.
func CliFromContext(ctx context.Context) (*CliApplication, bool) {
	app, ok := ctx.Value(applicationKey{}).(*CliApplication)
	return app, ok
}

// ApplicationFromContext returns the running application of any kind.
func ApplicationFromContext(ctx context.Context) (any, bool) {
	app := ctx.Value(applicationKey{})
	return app, app != nil
}
