package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps accounts in memory with an email index.
type Repository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.User{}, byEmail: map[string]string{}}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[user.Email]; taken {
		return nil, ports.ErrEmailTaken
	}
	r.users[user.ID] = user.Clone()
	r.byEmail[user.Email] = user.ID
	return user.Clone(), nil
}

func (r *Repository) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if owner, taken := r.byEmail[user.Email]; taken && owner != user.ID {
		return nil, ports.ErrEmailTaken
	}
	delete(r.byEmail, existing.Email)
	r.users[user.ID] = user.Clone()
	r.byEmail[user.Email] = user.ID
	return user.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return user.Clone(), nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.users[id].Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u.Clone())
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}
