package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/appshell/pkg/session"
)

type failingStore struct {
	session.Store
	err error
}

func (f failingStore) Get(context.Context, string) (*session.Session, error) {
	return nil, f.err
}

func TestManager_LoadSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, session.WithCookieName("sid"), session.WithTTL(time.Hour))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s, err := mgr.Load(ctx, r)
	require.NoError(t, err)
	require.True(t, s.IsNew())

	token := s.GetToken(false)

	cookie, err := mgr.Save(ctx, s)
	require.NoError(t, err)
	require.NotNil(t, cookie)
	assert.Equal(t, "sid", cookie.Name)
	assert.Equal(t, s.Token, cookie.Value)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)

	again, err := mgr.Save(ctx, s)
	require.NoError(t, err)
	assert.Nil(t, again, "clean session is not saved twice")

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	loaded, err := mgr.Load(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
	assert.True(t, loaded.HasToken(token))
}

func TestManager_LoadUnknownCookie(t *testing.T) {
	t.Parallel()

	mgr := session.NewManager(session.NewMemoryStore())
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "stale"})

	s, err := mgr.Load(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, s.IsNew())
	assert.NotEqual(t, "stale", s.Token)
}

func TestManager_LoadStoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	mgr := session.NewManager(failingStore{err: boom})
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "tok"})

	_, err := mgr.Load(context.Background(), r)
	require.ErrorIs(t, err, boom)
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	mgr := session.NewManager(store)

	s := mgr.New()
	_, err := mgr.Save(ctx, s)
	require.NoError(t, err)

	cookie, err := mgr.Destroy(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.Empty(t, cookie.Value)

	_, err = store.Get(ctx, s.Token)
	require.ErrorIs(t, err, session.ErrNotFound)
}
