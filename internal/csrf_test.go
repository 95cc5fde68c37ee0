package internal

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appshell/pkg/session"
)

func postForm(values url.Values) *http.Request {
	r := newTestRequest(http.MethodPost, "/submit", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestWebApplication_CSRF(t *testing.T) {
	t.Parallel()

	t.Run("without session", func(t *testing.T) {
		t.Parallel()

		app, _ := newTestWebApp(t, nil)

		_, err := app.FormToken(false)
		require.ErrorIs(t, err, ErrSessionNotConfigured)
		_, err = app.CheckToken("post")
		require.ErrorIs(t, err, ErrSessionNotConfigured)
	})

	t.Run("form field named by token", func(t *testing.T) {
		t.Parallel()

		sess := session.New("id", "tok", time.Now().Add(time.Hour))
		token := sess.GetToken(false)

		app, _ := newTestWebApp(t, postForm(url.Values{token: {"1"}}), WithSession(sess))

		got, err := app.FormToken(false)
		require.NoError(t, err)
		assert.Equal(t, token, got)

		ok, err := app.CheckToken("post")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing or empty field", func(t *testing.T) {
		t.Parallel()

		sess := session.New("id", "tok", time.Now().Add(time.Hour))
		token := sess.GetToken(false)

		for _, values := range []url.Values{{}, {token: {""}}, {token: {"--"}}, {"other": {"1"}}} {
			app, _ := newTestWebApp(t, postForm(values), WithSession(sess))
			ok, err := app.CheckToken("post")
			require.NoError(t, err)
			assert.False(t, ok, values)
		}
	})

	t.Run("query token for get", func(t *testing.T) {
		t.Parallel()

		sess := session.New("id", "tok", time.Now().Add(time.Hour))
		token := sess.GetToken(false)

		app, _ := newTestWebApp(t, newTestRequest(http.MethodGet, "/x?"+token+"=1", nil), WithSession(sess))
		ok, err := app.CheckToken("get")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = app.CheckToken("post")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("header token", func(t *testing.T) {
		t.Parallel()

		sess := session.New("id", "tok", time.Now().Add(time.Hour))
		token := sess.GetToken(false)

		r := newTestRequest(http.MethodPost, "/api", nil)
		r.Header.Set(CSRFHeader, token)
		app, _ := newTestWebApp(t, r, WithSession(sess))
		ok, err := app.CheckToken("post")
		require.NoError(t, err)
		assert.True(t, ok)

		r = newTestRequest(http.MethodPost, "/api", nil)
		r.Header.Set(CSRFHeader, "wrongtoken")
		app, _ = newTestWebApp(t, r, WithSession(sess))
		ok, err = app.CheckToken("post")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("forced new token", func(t *testing.T) {
		t.Parallel()

		sess := session.New("id", "tok", time.Now().Add(time.Hour))
		app, _ := newTestWebApp(t, nil, WithSession(sess))

		first, err := app.FormToken(false)
		require.NoError(t, err)
		second, err := app.FormToken(true)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestWebApplication_SessionCookie(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr := session.NewManager(store, session.WithCookieName("sid"))

	app, rec := newTestWebApp(t, nil, WithSessionManager(mgr))
	token, err := app.FormToken(false)
	require.NoError(t, err)

	require.NoError(t, app.Respond(context.Background()))

	cookie, ok := headerLine(rec.Lines(), "Set-Cookie")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(cookie, "sid="))

	r := newTestRequest(http.MethodGet, "/", nil)
	r.Header.Set("Cookie", strings.SplitN(cookie, ";", 2)[0])
	next, _ := newTestWebApp(t, r, WithSessionManager(mgr))
	again, err := next.FormToken(false)
	require.NoError(t, err)
	assert.Equal(t, token, again)
}

func TestWebApplication_NoCookieWithoutSessionUse(t *testing.T) {
	t.Parallel()

	mgr := session.NewManager(session.NewMemoryStore())
	app, rec := newTestWebApp(t, nil, WithSessionManager(mgr))

	require.NoError(t, app.Respond(context.Background()))
	_, ok := headerLine(rec.Lines(), "Set-Cookie")
	assert.False(t, ok)
}

func TestWebApplication_DestroySession(t *testing.T) {
	t.Parallel()

	t.Run("without session manager", func(t *testing.T) {
		t.Parallel()

		app, _ := newTestWebApp(t, nil)
		require.ErrorIs(t, app.DestroySession(context.Background()), ErrSessionNotConfigured)
	})

	t.Run("removes stored session and expires cookie", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := session.NewMemoryStore()
		mgr := session.NewManager(store)

		existing := mgr.New()
		_, err := mgr.Save(ctx, existing)
		require.NoError(t, err)

		r := newTestRequest(http.MethodPost, "/logout", nil)
		r.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: existing.Token})
		app, _ := newTestWebApp(t, r, WithSessionManager(mgr))

		require.NoError(t, app.DestroySession(ctx))

		_, err = store.Get(ctx, existing.Token)
		require.ErrorIs(t, err, session.ErrNotFound)

		cookie, ok := app.response.Header("Set-Cookie")
		require.True(t, ok)
		assert.Contains(t, cookie, session.DefaultCookieName+"=;")
		assert.Contains(t, cookie, "Max-Age=0")
	})
}
