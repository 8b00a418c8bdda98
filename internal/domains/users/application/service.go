package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application/types"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	tokens   ports.TokenCodec
	now      func() time.Time
	newID    func() string
	cost     int
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithPasswordCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithPasswordCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// NewService wires the account service. A nil session store disables token revocation.
func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenCodec, opts ...Option) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	s := &Service{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		now:      time.Now,
		newID:    NewUserID,
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewUserID returns a random account id.
func NewUserID() string {
	return "usr-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// SignUp registers a customer account.
func (s *Service) SignUp(ctx context.Context, input types.SignUpInput) (*domain.User, error) {
	user, err := domain.NewUser(s.newID(), input.Email, input.Password, input.FirstName, input.LastName, s.cost, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// SignIn checks credentials, then the requested role, and issues a token bound to a fresh session.
func (s *Service) SignIn(ctx context.Context, input types.SignInInput) (*types.AuthResult, error) {
	if s.tokens == nil {
		return nil, errors.New("token issuing not configured")
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, mapError(err)
	}
	email, err := domain.NormalizeEmail(input.Email)
	if err != nil {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(input.Password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	if user.Role != role {
		return nil, fmt.Errorf("%w: You do not have permission to log in as a %s.", ErrForbidden, role)
	}

	expires := s.now().Add(s.tokens.TTL()).UTC()
	claims := ports.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenID:   uuid.NewString(),
		ExpiresAt: expires,
	}
	token, err := s.tokens.Issue(claims)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	if err := s.sessions.Save(ctx, ports.Session{UserID: user.ID, TokenID: claims.TokenID, ExpiresAt: expires}); err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	return &types.AuthResult{User: user, Token: token, ExpiresAt: expires}, nil
}

// SignOut revokes the user's session.
func (s *Service) SignOut(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, userID)
}

// Authenticate verifies a bearer token and, when sessions are tracked, that it is the live session.
func (s *Service) Authenticate(ctx context.Context, token string) (*ports.Claims, error) {
	if s.tokens == nil {
		return nil, errors.New("token verification not configured")
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, mapError(err)
	}
	if s.sessions == ports.NoopSessionStore {
		return claims, nil
	}
	session, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.TokenID != claims.TokenID || !session.ExpiresAt.After(s.now()) {
		return nil, mapError(ports.ErrInvalidToken)
	}
	return claims, nil
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// UpdateRole changes the role of an account and revokes its live session.
func (s *Service) UpdateRole(ctx context.Context, input types.UpdateRoleInput) (*domain.User, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}
	if err := user.ChangeRole(role); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	_ = s.sessions.Delete(ctx, user.ID)
	return updated, nil
}

var _ ports.Service = (*Service)(nil)
