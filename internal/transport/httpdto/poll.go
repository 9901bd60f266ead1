package httpdto

import (
	"time"

	"livepoll/internal/domain/poll"
)

type CreatePollRequest struct {
	SessionID       string   `json:"session_id" binding:"required"`
	Question        string   `json:"question" binding:"required"`
	Options         []string `json:"options" binding:"required"`
	DurationSeconds int      `json:"duration_seconds"`
}

type CastVoteRequest struct {
	VoterID     string `json:"voter_id" binding:"required"`
	OptionIndex *int   `json:"option_index" binding:"required"`
}

type OptionResponse struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type PollResponse struct {
	ID              string           `json:"id"`
	SessionID       string           `json:"session_id"`
	Question        string           `json:"question"`
	Options         []OptionResponse `json:"options"`
	DurationSeconds int              `json:"duration_seconds"`
	IsActive        bool             `json:"is_active"`
	TotalVotes      int              `json:"total_votes"`
	CreatedAt       time.Time        `json:"created_at"`
	ClosedAt        *time.Time       `json:"closed_at,omitempty"`
}

type ResultsResponse struct {
	Options    []poll.OptionResult `json:"options"`
	TotalVotes int                 `json:"total_votes"`
}

func FromPoll(p poll.Poll) PollResponse {
	out := PollResponse{
		ID:              p.ID.String(),
		SessionID:       p.SessionID.String(),
		Question:        p.Question,
		Options:         make([]OptionResponse, len(p.Options)),
		DurationSeconds: p.DurationSeconds,
		IsActive:        p.IsActive,
		TotalVotes:      len(p.Ledger),
		CreatedAt:       p.CreatedAt,
		ClosedAt:        p.ClosedAt,
	}
	for i, opt := range p.Options {
		out.Options[i] = OptionResponse{Index: opt.Index, Text: opt.Text}
	}
	return out
}

func FromResults(r poll.Results) ResultsResponse {
	return ResultsResponse{Options: r.Options, TotalVotes: r.TotalVotes}
}
