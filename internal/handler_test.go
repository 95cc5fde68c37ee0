package internal

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appshell/pkg/controller"
	"github.com/dmitrymomot/appshell/pkg/event"
	"github.com/dmitrymomot/appshell/pkg/registry"
	"github.com/dmitrymomot/appshell/pkg/router"
)

type greetController struct{}

func (greetController) Execute(ctx context.Context) error {
	app, _ := FromContext(ctx)
	app.SetBody("hello " + app.Input().Get("name"))
	return nil
}

type articleController struct{}

func (articleController) Show(ctx context.Context) error {
	app, _ := FromContext(ctx)
	app.SetMimeType("text/plain")
	app.SetBody("article " + app.Input().Get("slug"))
	return nil
}

func newTestRouteHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()

	reg := controller.NewRegistry()
	reg.MustRegisterClass("Greet", (*greetController)(nil))
	reg.MustRegisterClass("Article", (*articleController)(nil))

	rt := router.New()
	rt.Get("/greet/{name}", "Greet")
	rt.Get("/articles/{slug}", controller.Action{Target: "Article", Method: "Show"})
	rt.Get("/go", func(ctx context.Context) error {
		app, _ := FromContext(ctx)
		app.Redirect("/greet/world", false)
		return nil
	})
	rt.Get("/broken", "Missing")

	return RouteHandler(rt, controller.NewResolver(reg), opts...)
}

func TestRouteHandler(t *testing.T) {
	t.Parallel()

	h := newTestRouteHandler(t)

	t.Run("class controller with route param", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/greet/alice", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello alice", w.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	})

	t.Run("query wins over route param", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/greet/alice?name=bob", nil))
		assert.Equal(t, "hello bob", w.Body.String())
	})

	t.Run("action controller", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles/intro", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "article intro", w.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("redirect", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/go", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "http://example.com/greet/world", w.Header().Get("Location"))
		assert.Empty(t, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unresolvable controller", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRouteHandler_ErrorEvents(t *testing.T) {
	t.Parallel()

	bus, log := newEventLog(event.Error)
	h := newTestRouteHandler(t, WithDispatcher(bus))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	errs := log.Errors()
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], router.ErrRouteNotFound)
	assert.ErrorIs(t, errs[1], controller.ErrUnresolvable)
}

func TestHandler_ConfigIsolation(t *testing.T) {
	t.Parallel()

	shared := registry.New(map[string]any{"gzip": false})
	h := Handler(func(ctx context.Context) error {
		app, _ := FromContext(ctx)
		app.Set("request.marker", app.Request().URL.Path)
		app.SetBody(app.Config().String("uri.route", ""))
		return nil
	}, WithConfig(shared))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/first", nil))

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, "first", string(body))
	assert.False(t, shared.Has("request.marker"))
	assert.False(t, shared.Has("uri.request"))
}

func TestHandler_HTTPError(t *testing.T) {
	t.Parallel()

	h := Handler(func(context.Context) error {
		return &HTTPError{Code: http.StatusTeapot, Err: errors.New("short and stout")}
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
