package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"livepoll/internal/domain/user"
	livepoll_errors "livepoll/pkg/errors"
)

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
}

// NewUserRepository returns an in-memory UserRepository. State lives for
// the process lifetime only.
func NewUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[uuid.UUID]user.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, livepoll_errors.ErrNotFound
	}
	return u, nil
}
