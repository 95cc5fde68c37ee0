package internal

import (
	"context"
	"net/http"
	"slices"

	"github.com/dmitrymomot/appshell/pkg/controller"
	"github.com/dmitrymomot/appshell/pkg/router"
	"github.com/dmitrymomot/appshell/pkg/transport"
)

// Handler returns an http.Handler that builds a WebApplication for every
// request and executes fn in it.
//
// When a configuration registry is given, each request works on its own
// copy so request-scoped keys such as uri.* never leak between requests.
func Handler(fn ExecuteFunc, opts ...Option) http.Handler {
	base := newSettings(opts)
	opts = slices.Clone(opts)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := transport.NewHTTP(w)

		reqOpts := make([]Option, 0, len(opts)+2)
		reqOpts = append(reqOpts, opts...)
		reqOpts = append(reqOpts,
			WithConfig(base.config.Clone()),
			WithExecute(fn),
		)

		app := NewWebApplication(r, t, reqOpts...)
		app.Execute(r.Context())
		t.Finish()
	})
}

// RouteHandler returns a Handler that routes each request through rt,
// resolves the controller with res and invokes it. Route parameters are
// added to the input unless the request already carries them.
func RouteHandler(rt *router.Router, res *controller.Resolver, opts ...Option) http.Handler {
	return Handler(func(ctx context.Context) error {
		app, _ := FromContext(ctx)
		req := app.Request()

		route, err := rt.ParseRoute(req.Method, req.URL.Path)
		if err != nil {
			_ = app.SetStatus(http.StatusNotFound)
			return err
		}

		for key, value := range route.Params {
			if !app.input.Has(key) {
				app.input.Set(key, value)
			}
		}

		fn, err := res.Resolve(route)
		if err != nil {
			return err
		}
		return fn(ctx)
	}, opts...)
}
