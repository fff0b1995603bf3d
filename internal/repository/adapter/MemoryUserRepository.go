package adapter

import (
	"context"
	"sync"

	port "go-huddle/internal/repository/port"
)

// MemoryUserRepository is an in-memory UserRepository used by tests.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	byUsername map[string]port.User
	byID       map[int64]port.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byUsername: make(map[string]port.User),
		byID:       make(map[int64]port.User),
	}
}

var _ port.UserRepository = (*MemoryUserRepository)(nil)

// Seed registers a user record.
func (r *MemoryUserRepository) Seed(u port.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUsername[u.Username] = u
	r.byID[u.ID] = u
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*port.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byUsername[username]
	if !ok {
		return nil, port.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id int64) (*port.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, port.ErrUserNotFound
	}
	return &u, nil
}
