package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"livepoll/internal/domain/poll"
	livepoll_errors "livepoll/pkg/errors"
)

type memoryPollRepository struct {
	mu    sync.RWMutex
	polls map[uuid.UUID]*poll.Poll
}

// NewPollRepository returns an in-memory PollRepository.
func NewPollRepository() PollRepository {
	return &memoryPollRepository{polls: make(map[uuid.UUID]*poll.Poll)}
}

func (r *memoryPollRepository) Create(_ context.Context, p *poll.Poll) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := p.Clone()
	r.polls[p.ID] = &stored
	return nil
}

func (r *memoryPollRepository) GetByID(_ context.Context, id uuid.UUID) (poll.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.polls[id]
	if !ok {
		return poll.Poll{}, livepoll_errors.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *memoryPollRepository) Update(_ context.Context, id uuid.UUID, fn func(*poll.Poll) error) (poll.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.polls[id]
	if !ok {
		return poll.Poll{}, livepoll_errors.ErrNotFound
	}
	work := p.Clone()
	if err := fn(&work); err != nil {
		return poll.Poll{}, err
	}
	r.polls[id] = &work
	return work.Clone(), nil
}

func (r *memoryPollRepository) DeleteBySession(_ context.Context, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.polls {
		if p.SessionID == sessionID {
			delete(r.polls, id)
		}
	}
	return nil
}
