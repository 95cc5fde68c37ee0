package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dchest/uniuri"
	"github.com/google/uuid"
)

// Manager defaults.
const (
	DefaultCookieName = "__sid"
	DefaultTTL        = 30 * 24 * time.Hour
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

func WithCookieName(name string) ManagerOption {
	return func(m *Manager) {
		if name != "" {
			m.cookieName = name
		}
	}
}

func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

func WithCookiePath(path string) ManagerOption {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

func WithCookieDomain(domain string) ManagerOption {
	return func(m *Manager) {
		m.domain = domain
	}
}

func WithSecureCookie(secure bool) ManagerOption {
	return func(m *Manager) {
		m.secure = secure
	}
}

func WithSameSite(mode http.SameSite) ManagerOption {
	return func(m *Manager) {
		m.sameSite = mode
	}
}

// Manager ties a Store to the session cookie.
type Manager struct {
	store      Store
	cookieName string
	path       string
	domain     string
	ttl        time.Duration
	sameSite   http.SameSite
	secure     bool
}

// NewManager creates a Manager over store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:      store,
		cookieName: DefaultCookieName,
		path:       "/",
		ttl:        DefaultTTL,
		sameSite:   http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load returns the session named by the request cookie. A missing cookie,
// unknown token or expired session yields a fresh unsaved session; other
// store errors are returned.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		s, err := m.store.Get(ctx, c.Value)
		switch {
		case err == nil:
			return s, nil
		case !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrExpired):
			return nil, err
		}
	}
	return m.New(), nil
}

// New creates a session that has not been persisted yet.
func (m *Manager) New() *Session {
	return New(uuid.NewString(), uniuri.NewLen(TokenLength), time.Now().Add(m.ttl))
}

// Save persists s if it is new or dirty and returns the cookie to send.
// It returns nil when there was nothing to save.
func (m *Manager) Save(ctx context.Context, s *Session) (*http.Cookie, error) {
	if !s.IsNew() && !s.IsDirty() {
		return nil, nil
	}

	s.LastActiveAt = time.Now()
	save := m.store.Update
	if s.IsNew() {
		save = m.store.Create
	}
	if err := save(ctx, s); err != nil {
		return nil, err
	}

	s.ClearNew()
	s.ClearDirty()
	return m.cookie(s.Token, int(m.ttl/time.Second)), nil
}

// Destroy removes s from the store and returns an expiring cookie.
func (m *Manager) Destroy(ctx context.Context, s *Session) (*http.Cookie, error) {
	if err := m.store.Delete(ctx, s.Token); err != nil {
		return nil, err
	}
	return m.cookie("", -1), nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: m.sameSite,
	}
}
