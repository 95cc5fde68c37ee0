package session

import "context"

// Store persists sessions keyed by their cookie token.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get returns the session for token, ErrNotFound when there is none and
	// ErrExpired when it is past its expiry.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves an existing session.
	Update(ctx context.Context, s *Session) error

	// Delete removes the session for token. Deleting a missing session is not an error.
	Delete(ctx context.Context, token string) error
}
