package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"livepoll/internal/domain/poll"
	"livepoll/internal/events"
	"livepoll/internal/repository"
	"livepoll/pkg/logger"
)

// RoomBroadcaster fans a payload out to every member of a room. Satisfied
// by the websocket hub.
type RoomBroadcaster interface {
	Broadcast(room string, payload []byte)
}

// RelayPublisher publishes poll lifecycle events into session rooms. It
// reads the authoritative poll state from the repository at publish time, so
// the relay is never the origin of truth for data it transports and no
// caller can feed it a stale or fabricated snapshot. Publishes are
// serialized under a mutex so broadcast tallies are monotonic.
type RelayPublisher struct {
	mu     sync.Mutex
	hub    RoomBroadcaster
	polls  repository.PollRepository
	logger *logger.Logger
}

func NewRelayPublisher(hub RoomBroadcaster, polls repository.PollRepository, l *logger.Logger) *RelayPublisher {
	return &RelayPublisher{hub: hub, polls: polls, logger: l}
}

// PollStartedPayload carries the full poll definition for client rendering
// and countdowns.
type PollStartedPayload struct {
	ID              string        `json:"id"`
	SessionID       string        `json:"session_id"`
	Question        string        `json:"question"`
	Options         []poll.Option `json:"options"`
	DurationSeconds int           `json:"duration_seconds"`
}

// TallyPayload carries the results snapshot after an accepted vote or on
// close.
type TallyPayload struct {
	PollID  string       `json:"poll_id"`
	Results poll.Results `json:"results"`
}

func (p *RelayPublisher) PublishPollStarted(ctx context.Context, pollID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, err := p.polls.GetByID(ctx, pollID)
	if err != nil {
		p.logf("publish poll.started: poll %s: %s", pollID, err)
		return
	}
	opts := make([]poll.Option, len(snapshot.Options))
	copy(opts, snapshot.Options)
	p.send(events.EventTypePollStarted, snapshot, PollStartedPayload{
		ID:              snapshot.ID.String(),
		SessionID:       snapshot.SessionID.String(),
		Question:        snapshot.Question,
		Options:         opts,
		DurationSeconds: snapshot.DurationSeconds,
	})
}

func (p *RelayPublisher) PublishTally(ctx context.Context, pollID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, err := p.polls.GetByID(ctx, pollID)
	if err != nil {
		p.logf("publish poll.tally: poll %s: %s", pollID, err)
		return
	}
	p.send(events.EventTypePollTally, snapshot, TallyPayload{
		PollID:  snapshot.ID.String(),
		Results: snapshot.Results(),
	})
}

func (p *RelayPublisher) PublishPollEnded(ctx context.Context, pollID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot, err := p.polls.GetByID(ctx, pollID)
	if err != nil {
		p.logf("publish poll.ended: poll %s: %s", pollID, err)
		return
	}
	p.send(events.EventTypePollEnded, snapshot, TallyPayload{
		PollID:  snapshot.ID.String(),
		Results: snapshot.Results(),
	})
}

func (p *RelayPublisher) send(eventType string, snapshot poll.Poll, payload any) {
	envelope, err := events.NewEnvelope(eventType, events.AggregateTypePoll, snapshot.ID.String(), payload)
	if err != nil {
		p.logf("publish %s: marshal payload: %s", eventType, err)
		return
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		p.logf("publish %s: marshal envelope: %s", eventType, err)
		return
	}
	p.hub.Broadcast(events.SessionRoom(snapshot.SessionID.String()), raw)
}

func (p *RelayPublisher) logf(template string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Errorf(template, args...)
	}
}
