package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"livepoll/internal/domain/poll"
	"livepoll/internal/domain/session"
	"livepoll/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

type SessionRepository interface {
	// Create inserts the session, failing with ErrAlreadyExists if its join
	// code is already held by another active session.
	Create(ctx context.Context, s *session.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (session.Session, error)
	GetActiveByCode(ctx context.Context, code string) (session.Session, error)
	// Update applies fn to the stored session under the repository lock and
	// returns the resulting snapshot. fn returning an error aborts the
	// mutation.
	Update(ctx context.Context, id uuid.UUID, fn func(*session.Session) error) (session.Session, error)
	// ListIdleSince returns sessions whose last activity predates the cutoff.
	ListIdleSince(ctx context.Context, cutoff time.Time) ([]session.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PollRepository interface {
	Create(ctx context.Context, p *poll.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (poll.Poll, error)
	// Update applies fn to the stored poll under the repository lock and
	// returns the resulting snapshot. fn returning an error aborts the
	// mutation. All vote and close transitions go through here so they are
	// atomic with respect to concurrent callers.
	Update(ctx context.Context, id uuid.UUID, fn func(*poll.Poll) error) (poll.Poll, error)
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}
