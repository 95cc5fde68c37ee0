package session

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/dchest/uniuri"
)

// tokenKey is the Values key holding the CSRF form token.
const tokenKey = "session.token"

// TokenLength is the length of generated session and form tokens.
const TokenLength = 32

// Session is a server-side session.
type Session struct {
	CreatedAt    time.Time      `json:"created_at"`
	LastActiveAt time.Time      `json:"last_active_at"`
	ExpiresAt    time.Time      `json:"expires_at"`
	Values       map[string]any `json:"values"`
	ID           string         `json:"id"`
	// Token is the cookie value; it differs from ID so IDs never leave the server.
	Token string `json:"token"`

	dirty bool
	isNew bool
}

// New creates a session that expires at expiresAt.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Values:       make(map[string]any),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		dirty:        true,
	}
}

// GetToken returns the CSRF form token, generating one when none exists or
// forceNew is set.
func (s *Session) GetToken(forceNew bool) string {
	if tok, ok := s.Values[tokenKey].(string); ok && tok != "" && !forceNew {
		return tok
	}
	tok := uniuri.NewLen(TokenLength)
	s.SetValue(tokenKey, tok)
	return tok
}

// HasToken reports whether token equals the stored CSRF form token.
func (s *Session) HasToken(token string) bool {
	stored, ok := s.Values[tokenKey].(string)
	if !ok || stored == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1
}

// SetValue stores a value and marks the session dirty.
func (s *Session) SetValue(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

func (s *Session) GetValue(key string) (any, bool) {
	val, ok := s.Values[key]
	return val, ok
}

// DeleteValue removes key, marking the session dirty only if it existed.
func (s *Session) DeleteValue(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

func (s *Session) IsDirty() bool { return s.dirty }
func (s *Session) MarkDirty()    { s.dirty = true }
func (s *Session) ClearDirty()   { s.dirty = false }
func (s *Session) IsNew() bool   { return s.isNew }
func (s *Session) ClearNew()     { s.isNew = false }

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Value returns the value at key asserted to T.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}
	val, ok := s.GetValue(key)
	if !ok {
		return zero, ErrNotFound
	}
	typed, ok := val.(T)
	if !ok {
		return zero, errors.New("session: type mismatch for key: " + key)
	}
	return typed, nil
}

// ValueOr is Value with a fallback.
func ValueOr[T any](s *Session, key string, def T) T {
	v, err := Value[T](s, key)
	if err != nil {
		return def
	}
	return v
}
