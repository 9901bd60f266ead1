package poll

import (
	"time"

	"github.com/google/uuid"
)

// Option bounds enforced at poll creation.
const (
	MinOptions = 2
	MaxOptions = 6
)

// Option is one answer choice. The index is its position in the poll's
// option list and doubles as its identifier on the wire.
type Option struct {
	Index int
	Text  string
}

// Poll is one question-with-options unit scoped to a session. The option
// list is fixed at creation and never changes length or order. The ledger
// maps voter id to the single option index that voter currently holds;
// per-option counts are always derived from it, never stored.
type Poll struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	Question        string
	Options         []Option
	DurationSeconds int
	IsActive        bool
	Ledger          map[uuid.UUID]int
	CreatedAt       time.Time
	ClosedAt        *time.Time
}

// OptionResult is one row of a results snapshot.
type OptionResult struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Results is the aggregate view of a poll at one instant.
type Results struct {
	Options    []OptionResult `json:"options"`
	TotalVotes int            `json:"total_votes"`
}

// Results derives per-option counts by scanning the ledger. TotalVotes
// equals the ledger size, so sum(counts) == TotalVotes by construction.
func (p *Poll) Results() Results {
	counts := make([]int, len(p.Options))
	for _, idx := range p.Ledger {
		if idx >= 0 && idx < len(counts) {
			counts[idx]++
		}
	}
	out := Results{
		Options:    make([]OptionResult, len(p.Options)),
		TotalVotes: len(p.Ledger),
	}
	for i, opt := range p.Options {
		out.Options[i] = OptionResult{Index: opt.Index, Text: opt.Text, Count: counts[i]}
	}
	return out
}

// Clone returns a deep copy safe to hand outside the repository lock.
func (p *Poll) Clone() Poll {
	out := *p
	out.Options = make([]Option, len(p.Options))
	copy(out.Options, p.Options)
	out.Ledger = make(map[uuid.UUID]int, len(p.Ledger))
	for k, v := range p.Ledger {
		out.Ledger[k] = v
	}
	if p.ClosedAt != nil {
		t := *p.ClosedAt
		out.ClosedAt = &t
	}
	return out
}
