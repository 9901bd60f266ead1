package session

import (
	"time"

	"github.com/google/uuid"
)

// Participant is one roster entry. Unique per session by user id.
type Participant struct {
	ID       uuid.UUID
	Name     string
	JoinedAt time.Time
}

// Session is a presenter-owned polling context. The join code is unique
// among active sessions only, not globally over time.
type Session struct {
	ID            uuid.UUID
	Code          string
	PresenterID   uuid.UUID
	PresenterName string
	IsActive      bool
	Participants  []Participant
	CurrentPollID *uuid.UUID
	CreatedAt     time.Time
	LastActiveAt  time.Time
}

// HasParticipant reports whether the roster already contains the user.
func (s *Session) HasParticipant(id uuid.UUID) bool {
	for _, p := range s.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand outside the repository lock.
func (s *Session) Clone() Session {
	out := *s
	out.Participants = make([]Participant, len(s.Participants))
	copy(out.Participants, s.Participants)
	if s.CurrentPollID != nil {
		id := *s.CurrentPollID
		out.CurrentPollID = &id
	}
	return out
}
