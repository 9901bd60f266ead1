package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"livepoll/internal/repository"
	livepoll_errors "livepoll/pkg/errors"
)

func newSessionService(t *testing.T) *SessionService {
	t.Helper()
	return NewSessionService(repository.NewSessionRepository(), 6)
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(t)

	created, err := sessions.Create(ctx, uuid.New(), "Alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(created.Code) != 6 {
		t.Errorf("code length = %d, want 6", len(created.Code))
	}
	for _, ch := range created.Code {
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			t.Errorf("code %q contains unexpected character %q", created.Code, ch)
		}
	}
	if !created.IsActive {
		t.Error("new session should be active")
	}
	if len(created.Participants) != 0 {
		t.Error("new session should have an empty roster")
	}
	if created.CurrentPollID != nil {
		t.Error("new session should have no current poll")
	}
}

func TestCreateSessionValidation(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(t)

	if _, err := sessions.Create(ctx, uuid.Nil, "Alice"); !errors.Is(err, livepoll_errors.ErrInvalidInput) {
		t.Errorf("nil presenter id: got %v, want ErrInvalidInput", err)
	}
	if _, err := sessions.Create(ctx, uuid.New(), "  "); !errors.Is(err, livepoll_errors.ErrInvalidInput) {
		t.Errorf("blank presenter name: got %v, want ErrInvalidInput", err)
	}
}

func TestCreateSessionRetriesOnCodeCollision(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSessionRepository()

	// The first service grabs the code "AAAAAA".
	first := NewSessionService(repo, 6).WithCodeGenerator(func() string { return "AAAAAA" })
	if _, err := first.Create(ctx, uuid.New(), "Alice"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// The second draws the taken code once, then a fresh one.
	draws := []string{"AAAAAA", "BBBBBB"}
	second := NewSessionService(repo, 6).WithCodeGenerator(func() string {
		code := draws[0]
		if len(draws) > 1 {
			draws = draws[1:]
		}
		return code
	})
	created, err := second.Create(ctx, uuid.New(), "Bob")
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if created.Code != "BBBBBB" {
		t.Errorf("code = %q, want retry result BBBBBB", created.Code)
	}
}

func TestCreateSessionCodeExhaustion(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSessionRepository()

	stuck := NewSessionService(repo, 6).WithCodeGenerator(func() string { return "SAME00" })
	if _, err := stuck.Create(ctx, uuid.New(), "Alice"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := stuck.Create(ctx, uuid.New(), "Bob"); !errors.Is(err, livepoll_errors.ErrCodeExhausted) {
		t.Fatalf("Create = %v, want ErrCodeExhausted", err)
	}
}

func TestCreateSessionCodesUniqueAmongActive(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		created, err := sessions.Create(ctx, uuid.New(), "Presenter")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[created.Code] {
			t.Fatalf("duplicate active code %q", created.Code)
		}
		seen[created.Code] = true
	}
}

func TestJoinSession(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(t)

	created, err := sessions.Create(ctx, uuid.New(), "Alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	participantID := uuid.New()
	joined, err := sessions.Join(ctx, created.Code, participantID, "Bob")
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if len(joined.Participants) != 1 {
		t.Fatalf("roster size = %d, want 1", len(joined.Participants))
	}
	if joined.Participants[0].ID != participantID || joined.Participants[0].Name != "Bob" {
		t.Errorf("unexpected roster entry: %+v", joined.Participants[0])
	}

	// Rejoining with the same id is a no-op, not a duplicate.
	rejoined, err := sessions.Join(ctx, created.Code, participantID, "Bob")
	if err != nil {
		t.Fatalf("rejoin failed: %v", err)
	}
	if len(rejoined.Participants) != 1 {
		t.Errorf("roster size after rejoin = %d, want 1", len(rejoined.Participants))
	}

	// Codes are generated uppercase but joins tolerate lowercase entry.
	other, err := sessions.Join(ctx, "  "+strings.ToLower(created.Code)+" ", uuid.New(), "Carol")
	if err != nil {
		t.Fatalf("lowercase join failed: %v", err)
	}
	if len(other.Participants) != 2 {
		t.Errorf("roster size = %d, want 2", len(other.Participants))
	}
}

func TestJoinUnknownCode(t *testing.T) {
	sessions := newSessionService(t)
	if _, err := sessions.Join(context.Background(), "NOPE99", uuid.New(), "Bob"); !errors.Is(err, livepoll_errors.ErrNotFound) {
		t.Fatalf("Join = %v, want ErrNotFound", err)
	}
}

func TestGetSession(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(t)

	created, err := sessions.Create(ctx, uuid.New(), "Alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := sessions.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found.ID != created.ID || found.Code != created.Code {
		t.Errorf("Get returned wrong session: %+v", found)
	}

	if _, err := sessions.Get(ctx, uuid.New()); !errors.Is(err, livepoll_errors.ErrNotFound) {
		t.Errorf("Get unknown = %v, want ErrNotFound", err)
	}
}

func TestSetCurrentPollOverwrites(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(t)

	created, err := sessions.Create(ctx, uuid.New(), "Alice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	firstPoll, secondPoll := uuid.New(), uuid.New()
	if err := sessions.SetCurrentPoll(ctx, created.ID, firstPoll); err != nil {
		t.Fatalf("SetCurrentPoll failed: %v", err)
	}
	if err := sessions.SetCurrentPoll(ctx, created.ID, secondPoll); err != nil {
		t.Fatalf("SetCurrentPoll failed: %v", err)
	}

	found, err := sessions.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found.CurrentPollID == nil || *found.CurrentPollID != secondPoll {
		t.Errorf("current poll = %v, want %s", found.CurrentPollID, secondPoll)
	}

	if err := sessions.SetCurrentPoll(ctx, uuid.New(), firstPoll); !errors.Is(err, livepoll_errors.ErrNotFound) {
		t.Errorf("SetCurrentPoll unknown session = %v, want ErrNotFound", err)
	}
}
