package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"livepoll/internal/domain/session"
	livepoll_errors "livepoll/pkg/errors"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session.Session
	// byCode indexes active sessions only; entries are removed on
	// deactivation or deletion so codes become reusable.
	byCode map[string]uuid.UUID
}

// NewSessionRepository returns an in-memory SessionRepository.
func NewSessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[uuid.UUID]*session.Session),
		byCode:   make(map[string]uuid.UUID),
	}
}

func (r *memorySessionRepository) Create(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.IsActive {
		if _, taken := r.byCode[s.Code]; taken {
			return livepoll_errors.ErrAlreadyExists
		}
		r.byCode[s.Code] = s.ID
	}
	stored := s.Clone()
	r.sessions[s.ID] = &stored
	return nil
}

func (r *memorySessionRepository) GetByID(_ context.Context, id uuid.UUID) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return session.Session{}, livepoll_errors.ErrNotFound
	}
	return s.Clone(), nil
}

func (r *memorySessionRepository) GetActiveByCode(_ context.Context, code string) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCode[code]
	if !ok {
		return session.Session{}, livepoll_errors.ErrNotFound
	}
	s, ok := r.sessions[id]
	if !ok || !s.IsActive {
		return session.Session{}, livepoll_errors.ErrNotFound
	}
	return s.Clone(), nil
}

func (r *memorySessionRepository) Update(_ context.Context, id uuid.UUID, fn func(*session.Session) error) (session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return session.Session{}, livepoll_errors.ErrNotFound
	}
	work := s.Clone()
	if err := fn(&work); err != nil {
		return session.Session{}, err
	}
	if s.IsActive && !work.IsActive {
		delete(r.byCode, work.Code)
	}
	r.sessions[id] = &work
	return work.Clone(), nil
}

func (r *memorySessionRepository) ListIdleSince(_ context.Context, cutoff time.Time) ([]session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var idle []session.Session
	for _, s := range r.sessions {
		if s.LastActiveAt.Before(cutoff) {
			idle = append(idle, s.Clone())
		}
	}
	return idle, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return livepoll_errors.ErrNotFound
	}
	if s.IsActive {
		delete(r.byCode, s.Code)
	}
	delete(r.sessions, id)
	return nil
}
