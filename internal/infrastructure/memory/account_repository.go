// Package memory is an in-process account store for development and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-auth-api/internal/domain/repository"
)

type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.Account
	byLower map[string]string // lower(email) -> id
	now     func() time.Time
	newID   func() string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[string]*entity.Account),
		byLower: make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

// FindByEmail matches the stored email exactly, like the SQL store.
func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byLower[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	a := r.byID[id]
	if a.Email != email {
		return nil, repository.ErrAccountNotFound
	}
	return a.Clone(), nil
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return a.Clone(), nil
}

func (r *AccountRepository) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(a.Email)
	if _, taken := r.byLower[key]; taken {
		return repository.ErrEmailTaken
	}
	now := r.now()
	a.ID = r.newID()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.byID[a.ID] = a.Clone()
	r.byLower[key] = a.ID
	return nil
}

func (r *AccountRepository) Save(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[a.ID]
	if !ok {
		return repository.ErrAccountNotFound
	}
	oldKey, newKey := strings.ToLower(cur.Email), strings.ToLower(a.Email)
	if oldKey != newKey {
		if _, taken := r.byLower[newKey]; taken {
			return repository.ErrEmailTaken
		}
		delete(r.byLower, oldKey)
		r.byLower[newKey] = a.ID
	}
	a.UpdatedAt = r.now()
	r.byID[a.ID] = a.Clone()
	return nil
}
