package services

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"livepoll/internal/domain/session"
	"livepoll/internal/repository"
	livepoll_errors "livepoll/pkg/errors"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxCodeAttempts bounds the collision retry loop in Create.
const maxCodeAttempts = 10

// CodeGenerator draws a candidate join code. Injectable for tests.
type CodeGenerator func() string

// SessionService is the session registry: lifecycle, join code uniqueness
// among active sessions, idempotent roster joins, and the current-poll
// pointer.
type SessionService struct {
	repo    repository.SessionRepository
	genCode CodeGenerator
}

func NewSessionService(repo repository.SessionRepository, codeLength int) *SessionService {
	if codeLength <= 0 {
		codeLength = 6
	}
	return &SessionService{repo: repo, genCode: randomCode(codeLength)}
}

// WithCodeGenerator overrides the join code draw. Used by tests to force
// collisions.
func (s *SessionService) WithCodeGenerator(gen CodeGenerator) *SessionService {
	s.genCode = gen
	return s
}

func randomCode(length int) CodeGenerator {
	return func() string {
		buf := make([]byte, length)
		if _, err := rand.Read(buf); err != nil {
			return ""
		}
		for i, b := range buf {
			buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
		}
		return string(buf)
	}
}

// Create registers a new active session. The join code is guaranteed unique
// among currently-active sessions: the repository rejects duplicates and the
// draw is retried, up to maxCodeAttempts before ErrCodeExhausted.
func (s *SessionService) Create(ctx context.Context, presenterID uuid.UUID, presenterName string) (session.Session, error) {
	presenterName = strings.TrimSpace(presenterName)
	if presenterID == uuid.Nil || presenterName == "" {
		return session.Session{}, livepoll_errors.ErrInvalidInput
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		now := time.Now()
		newSession := session.Session{
			ID:            uuid.New(),
			Code:          s.genCode(),
			PresenterID:   presenterID,
			PresenterName: presenterName,
			IsActive:      true,
			Participants:  []session.Participant{},
			CreatedAt:     now,
			LastActiveAt:  now,
		}
		if newSession.Code == "" {
			continue
		}
		err := s.repo.Create(ctx, &newSession)
		if errors.Is(err, livepoll_errors.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return session.Session{}, err
		}
		return newSession, nil
	}
	return session.Session{}, livepoll_errors.ErrCodeExhausted
}

// Join adds a participant to the active session matching the code. Joining
// with an id already on the roster is a no-op, not a duplicate entry.
func (s *SessionService) Join(ctx context.Context, code string, participantID uuid.UUID, participantName string) (session.Session, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	participantName = strings.TrimSpace(participantName)
	if code == "" || participantID == uuid.Nil || participantName == "" {
		return session.Session{}, livepoll_errors.ErrInvalidInput
	}

	found, err := s.repo.GetActiveByCode(ctx, code)
	if err != nil {
		return session.Session{}, err
	}

	return s.repo.Update(ctx, found.ID, func(sess *session.Session) error {
		if !sess.IsActive {
			return livepoll_errors.ErrNotFound
		}
		sess.LastActiveAt = time.Now()
		if sess.HasParticipant(participantID) {
			return nil
		}
		sess.Participants = append(sess.Participants, session.Participant{
			ID:       participantID,
			Name:     participantName,
			JoinedAt: time.Now(),
		})
		return nil
	})
}

func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (session.Session, error) {
	return s.repo.GetByID(ctx, id)
}

// SetCurrentPoll points the session at its active poll, overwriting any
// prior pointer. Invoked by the poll store on poll creation.
func (s *SessionService) SetCurrentPoll(ctx context.Context, sessionID, pollID uuid.UUID) error {
	_, err := s.repo.Update(ctx, sessionID, func(sess *session.Session) error {
		id := pollID
		sess.CurrentPollID = &id
		sess.LastActiveAt = time.Now()
		return nil
	})
	return err
}

// Touch bumps the session's activity clock so the sweeper does not evict a
// session with live voting traffic.
func (s *SessionService) Touch(ctx context.Context, sessionID uuid.UUID) {
	_, _ = s.repo.Update(ctx, sessionID, func(sess *session.Session) error {
		sess.LastActiveAt = time.Now()
		return nil
	})
}
