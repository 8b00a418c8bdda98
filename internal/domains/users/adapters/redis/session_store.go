// Package redis keeps user sessions in Redis with native key expiry.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// KeyPrefix namespaces session keys.
const KeyPrefix = "session:"

// SessionStore stores the live token id of a user under session:<userID>, expiring with the token.
type SessionStore struct {
	client goredis.UniversalClient
	now    func() time.Time
}

func NewSessionStore(client goredis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

func Key(userID string) string { return KeyPrefix + userID }

func (s *SessionStore) Save(ctx context.Context, session ports.Session) error {
	if s == nil || s.client == nil {
		return errors.New("redis session store not configured")
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, session.UserID)
	}
	return s.client.Set(ctx, Key(session.UserID), session.TokenID, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*ports.Session, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("redis session store not configured")
	}
	pipe := s.client.Pipeline()
	tokenCmd := pipe.Get(ctx, Key(userID))
	ttlCmd := pipe.PTTL(ctx, Key(userID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("load session %s: %w", userID, err)
	}
	tokenID, err := tokenCmd.Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	session := &ports.Session{UserID: userID, TokenID: tokenID}
	if ttl := ttlCmd.Val(); ttl > 0 {
		session.ExpiresAt = s.now().Add(ttl)
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if s == nil || s.client == nil {
		return errors.New("redis session store not configured")
	}
	return s.client.Del(ctx, Key(userID)).Err()
}
