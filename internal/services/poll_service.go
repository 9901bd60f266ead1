package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"livepoll/internal/domain/poll"
	"livepoll/internal/repository"
	livepoll_errors "livepoll/pkg/errors"
)

// PollService is the poll store: poll lifecycle, the vote ledger, and
// derived results. Every accepted mutation is followed by a publish through
// the relay publisher; the publisher pulls its own snapshot, callers never
// hand it payloads.
type PollService struct {
	repo      repository.PollRepository
	sessions  *SessionService
	publisher *RelayPublisher
}

func NewPollService(repo repository.PollRepository, sessions *SessionService, publisher *RelayPublisher) *PollService {
	return &PollService{repo: repo, sessions: sessions, publisher: publisher}
}

// Create validates the question and option texts, fixes option order, and
// registers the poll as the owning session's current poll.
func (s *PollService) Create(ctx context.Context, sessionID uuid.UUID, question string, options []string, durationSeconds int) (poll.Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" || durationSeconds < 0 {
		return poll.Poll{}, livepoll_errors.ErrInvalidInput
	}

	texts := make([]string, 0, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return poll.Poll{}, livepoll_errors.ErrInvalidInput
		}
		texts = append(texts, opt)
	}
	if len(texts) < poll.MinOptions || len(texts) > poll.MaxOptions {
		return poll.Poll{}, livepoll_errors.ErrInvalidInput
	}

	// Reject unknown sessions before inserting the poll.
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return poll.Poll{}, err
	}

	newPoll := poll.Poll{
		ID:              uuid.New(),
		SessionID:       sessionID,
		Question:        question,
		Options:         make([]poll.Option, len(texts)),
		DurationSeconds: durationSeconds,
		IsActive:        true,
		Ledger:          make(map[uuid.UUID]int),
		CreatedAt:       time.Now(),
	}
	for i, text := range texts {
		newPoll.Options[i] = poll.Option{Index: i, Text: text}
	}

	if err := s.repo.Create(ctx, &newPoll); err != nil {
		return poll.Poll{}, err
	}
	if err := s.sessions.SetCurrentPoll(ctx, sessionID, newPoll.ID); err != nil {
		// The session can be swept between the existence check and here;
		// reclaim the poll so it does not outlive its session.
		_ = s.repo.DeleteBySession(ctx, sessionID)
		return poll.Poll{}, err
	}

	s.publisher.PublishPollStarted(ctx, newPoll.ID)
	return newPoll, nil
}

// CastVote replaces any prior ledger entry for the voter. The closed check,
// range check, and overwrite happen inside one repository update so
// concurrent votes and closes serialize on the poll.
func (s *PollService) CastVote(ctx context.Context, pollID, voterID uuid.UUID, optionIndex int) (poll.Poll, error) {
	if voterID == uuid.Nil {
		return poll.Poll{}, livepoll_errors.ErrInvalidInput
	}

	updated, err := s.repo.Update(ctx, pollID, func(p *poll.Poll) error {
		if !p.IsActive {
			return livepoll_errors.ErrPollClosed
		}
		if optionIndex < 0 || optionIndex >= len(p.Options) {
			return livepoll_errors.ErrInvalidOption
		}
		p.Ledger[voterID] = optionIndex
		return nil
	})
	if err != nil {
		return poll.Poll{}, err
	}

	s.sessions.Touch(ctx, updated.SessionID)
	s.publisher.PublishTally(ctx, pollID)
	return updated, nil
}

// Close freezes the ledger. Closing an already-closed poll returns the
// current state without publishing a second poll.ended.
func (s *PollService) Close(ctx context.Context, pollID uuid.UUID) (poll.Poll, error) {
	transitioned := false
	updated, err := s.repo.Update(ctx, pollID, func(p *poll.Poll) error {
		if !p.IsActive {
			return nil
		}
		p.IsActive = false
		p.ClosedAt = livepoll_errors.NowPtr()
		transitioned = true
		return nil
	})
	if err != nil {
		return poll.Poll{}, err
	}

	if transitioned {
		s.publisher.PublishPollEnded(ctx, pollID)
	}
	return updated, nil
}

func (s *PollService) Get(ctx context.Context, pollID uuid.UUID) (poll.Poll, error) {
	return s.repo.GetByID(ctx, pollID)
}

// Results derives the aggregate snapshot from the ledger. Valid at any
// lifecycle point, including before any votes and after close.
func (s *PollService) Results(ctx context.Context, pollID uuid.UUID) (poll.Results, error) {
	p, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return poll.Results{}, err
	}
	return p.Results(), nil
}
