package memory

import (
	"context"
	"sync"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, session ports.Session) error {
	s.sessions.Store(session.UserID, session)
	return nil
}

func (s *SessionStore) Get(_ context.Context, userID string) (*ports.Session, error) {
	value, ok := s.sessions.Load(userID)
	if !ok {
		return nil, nil
	}
	session := value.(ports.Session)
	return &session, nil
}

func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.sessions.Delete(userID)
	return nil
}
