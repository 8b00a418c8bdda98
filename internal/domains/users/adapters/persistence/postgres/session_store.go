package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

// SessionStore persists user sessions in PostgreSQL, one row per user.
type SessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

type sessionRecord struct {
	UserID    string    `gorm:"primaryKey;column:user_id;size:64"`
	TokenID   string    `gorm:"column:token_id;size:64"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Save upserts the session of a user, replacing any previous token.
func (s *SessionStore) Save(ctx context.Context, session userports.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if strings.TrimSpace(session.UserID) == "" || strings.TrimSpace(session.TokenID) == "" {
		return errors.New("user id and token id are required")
	}
	rec := sessionRecord{UserID: session.UserID, TokenID: session.TokenID, ExpiresAt: session.ExpiresAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_id", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Get returns the unexpired session of a user.
func (s *SessionStore) Get(ctx context.Context, userID string) (*userports.Session, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rec sessionRecord
	err := s.db.WithContext(ctx).First(&rec, "user_id = ? AND expires_at > ?", userID, s.now()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &userports.Session{UserID: rec.UserID, TokenID: rec.TokenID, ExpiresAt: rec.ExpiresAt}, nil
}

// Delete removes the session of a user.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "user_id = ?", userID).Error
}

// PurgeExpired removes all expired sessions and reports how many were dropped.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ userports.SessionStore = (*SessionStore)(nil)
