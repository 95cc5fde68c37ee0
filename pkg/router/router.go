package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// ResolvedRoute is the result of a successful match.
type ResolvedRoute struct {
	// Controller is the value registered for the matched pattern.
	Controller any
	// Params holds the path parameters captured by the pattern.
	Params map[string]string
	// Path is the request path that was matched.
	Path string
}

// Router keeps method+pattern registrations on a chi mux.
type Router struct {
	mu          sync.RWMutex
	mux         *chi.Mux
	controllers map[string]any
}

// New returns an empty router.
func New() *Router {
	return &Router{
		mux:         chi.NewMux(),
		controllers: make(map[string]any),
	}
}

var methods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodTrace:   {},
}

// Handle registers controller for method and pattern. Registering the same
// pair twice replaces the controller.
func (r *Router) Handle(method, pattern string, controller any) error {
	method = strings.ToUpper(method)
	if _, ok := methods[method]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := routeKey(method, pattern)
	if _, exists := r.controllers[key]; !exists {
		r.mux.MethodFunc(method, pattern, noop)
	}
	r.controllers[key] = controller
	return nil
}

// Get registers a GET route and panics on misuse.
func (r *Router) Get(pattern string, controller any) { r.must(http.MethodGet, pattern, controller) }

// Post registers a POST route.
func (r *Router) Post(pattern string, controller any) { r.must(http.MethodPost, pattern, controller) }

// Put registers a PUT route.
func (r *Router) Put(pattern string, controller any) { r.must(http.MethodPut, pattern, controller) }

// Patch registers a PATCH route.
func (r *Router) Patch(pattern string, controller any) {
	r.must(http.MethodPatch, pattern, controller)
}

// Delete registers a DELETE route.
func (r *Router) Delete(pattern string, controller any) {
	r.must(http.MethodDelete, pattern, controller)
}

// ParseRoute finds the controller for method and path.
func (r *Router) ParseRoute(method, path string) (ResolvedRoute, error) {
	if path == "" {
		path = "/"
	}
	method = strings.ToUpper(method)

	r.mu.RLock()
	defer r.mu.RUnlock()

	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, method, path) || len(rctx.RoutePatterns) == 0 {
		return ResolvedRoute{Path: path}, fmt.Errorf("%w: %s %s", ErrRouteNotFound, method, path)
	}

	pattern := rctx.RoutePatterns[len(rctx.RoutePatterns)-1]
	controller, ok := r.controllers[routeKey(method, pattern)]
	if !ok {
		return ResolvedRoute{Path: path}, fmt.Errorf("%w: %s %s", ErrRouteNotFound, method, path)
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[i]
	}

	return ResolvedRoute{
		Controller: controller,
		Params:     params,
		Path:       path,
	}, nil
}

func (r *Router) must(method, pattern string, controller any) {
	if err := r.Handle(method, pattern, controller); err != nil {
		panic(err)
	}
}

func routeKey(method, pattern string) string {
	return method + " " + pattern
}

func noop(http.ResponseWriter, *http.Request) {}
