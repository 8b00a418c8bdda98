package ports

import (
	"context"
	"time"
)

// Session is the live sign-in of a user. One session per user; a new sign-in replaces the old one.
type Session struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// SessionStore abstracts session persistence.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	// Get returns nil, nil when the user has no live session.
	Get(ctx context.Context, userID string) (*Session, error)
	Delete(ctx context.Context, userID string) error
}

// NoopSessionStore keeps nothing. Services wired with it skip session checks, so sign-out cannot revoke tokens.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(context.Context, Session) error { return nil }
func (noopSessionStore) Get(context.Context, string) (*Session, error) { return nil, nil }
func (noopSessionStore) Delete(context.Context, string) error { return nil }
