package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"livepoll/internal/events"
	"livepoll/internal/repository"
)

func containsEventType(payload []byte, eventType string) bool {
	var envelope events.Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return false
	}
	return envelope.EventType == eventType
}

func decodeEnvelope(t *testing.T, payload []byte) events.Envelope {
	t.Helper()
	var envelope events.Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return envelope
}

func TestPublisherBroadcastsToSessionRoom(t *testing.T) {
	ctx := context.Background()
	sessions, polls, broadcaster := newTestEngine(t)
	sessionID := newTestSession(t, sessions)

	created, err := polls.Create(ctx, sessionID, "Pick", []string{"a", "b"}, 30)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	calls := broadcaster.calls()
	if len(calls) != 1 {
		t.Fatalf("broadcast count = %d, want 1", len(calls))
	}
	wantRoom := events.SessionRoom(sessionID.String())
	if calls[0].room != wantRoom {
		t.Errorf("room = %q, want %q", calls[0].room, wantRoom)
	}

	envelope := decodeEnvelope(t, calls[0].payload)
	if envelope.EventType != events.EventTypePollStarted {
		t.Errorf("event_type = %q, want %q", envelope.EventType, events.EventTypePollStarted)
	}
	if envelope.AggregateID != created.ID.String() {
		t.Errorf("aggregate_id = %q, want %q", envelope.AggregateID, created.ID)
	}

	var payload PollStartedPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Question != "Pick" || len(payload.Options) != 2 || payload.DurationSeconds != 30 {
		t.Errorf("unexpected poll.started payload: %+v", payload)
	}
}

func TestPublisherPullsSnapshotFromStore(t *testing.T) {
	// Tally payloads must reflect the store at publish time; nothing a
	// caller holds can feed the broadcast.
	ctx := context.Background()
	sessions, polls, broadcaster := newTestEngine(t)
	sessionID := newTestSession(t, sessions)

	created, err := polls.Create(ctx, sessionID, "Pick", []string{"a", "b"}, 30)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	v1, v2 := uuid.New(), uuid.New()
	if _, err := polls.CastVote(ctx, created.ID, v1, 0); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if _, err := polls.CastVote(ctx, created.ID, v2, 1); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	var tallies []TallyPayload
	for _, call := range broadcaster.calls() {
		envelope := decodeEnvelope(t, call.payload)
		if envelope.EventType != events.EventTypePollTally {
			continue
		}
		var tally TallyPayload
		if err := json.Unmarshal(envelope.Payload, &tally); err != nil {
			t.Fatalf("unmarshal tally: %v", err)
		}
		tallies = append(tallies, tally)
	}

	if len(tallies) != 2 {
		t.Fatalf("tally count = %d, want 2", len(tallies))
	}
	if tallies[0].Results.TotalVotes != 1 {
		t.Errorf("first tally totalVotes = %d, want 1", tallies[0].Results.TotalVotes)
	}
	if tallies[1].Results.TotalVotes != 2 {
		t.Errorf("second tally totalVotes = %d, want 2", tallies[1].Results.TotalVotes)
	}
}

func TestPublisherEmitsFinalResultsOnClose(t *testing.T) {
	ctx := context.Background()
	sessions, polls, broadcaster := newTestEngine(t)
	sessionID := newTestSession(t, sessions)

	created, err := polls.Create(ctx, sessionID, "Pick", []string{"a", "b"}, 30)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := polls.CastVote(ctx, created.ID, uuid.New(), 1); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if _, err := polls.Close(ctx, created.ID); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	calls := broadcaster.calls()
	last := decodeEnvelope(t, calls[len(calls)-1].payload)
	if last.EventType != events.EventTypePollEnded {
		t.Fatalf("last event = %q, want %q", last.EventType, events.EventTypePollEnded)
	}
	var tally TallyPayload
	if err := json.Unmarshal(last.Payload, &tally); err != nil {
		t.Fatalf("unmarshal tally: %v", err)
	}
	if tally.PollID != created.ID.String() {
		t.Errorf("poll_id = %q, want %q", tally.PollID, created.ID)
	}
	if tally.Results.TotalVotes != 1 || tally.Results.Options[1].Count != 1 {
		t.Errorf("unexpected final results: %+v", tally.Results)
	}
}

func TestPublisherSkipsUnknownPoll(t *testing.T) {
	pollRepo := repository.NewPollRepository()
	broadcaster := &fakeBroadcaster{}
	publisher := NewRelayPublisher(broadcaster, pollRepo, nil)

	publisher.PublishTally(context.Background(), uuid.New())
	if len(broadcaster.calls()) != 0 {
		t.Error("publish for unknown poll should broadcast nothing")
	}
}
