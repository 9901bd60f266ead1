package httpdto

import (
	"time"

	"livepoll/internal/domain/session"
)

type CreateSessionRequest struct {
	PresenterID   string `json:"presenter_id" binding:"required"`
	PresenterName string `json:"presenter_name" binding:"required"`
}

type JoinSessionRequest struct {
	Code            string `json:"code" binding:"required"`
	ParticipantID   string `json:"participant_id" binding:"required"`
	ParticipantName string `json:"participant_name" binding:"required"`
}

type ParticipantResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

type SessionResponse struct {
	ID            string                `json:"id"`
	Code          string                `json:"code"`
	PresenterID   string                `json:"presenter_id"`
	PresenterName string                `json:"presenter_name"`
	IsActive      bool                  `json:"is_active"`
	Participants  []ParticipantResponse `json:"participants"`
	CurrentPollID string                `json:"current_poll_id,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

func FromSession(s session.Session) SessionResponse {
	out := SessionResponse{
		ID:            s.ID.String(),
		Code:          s.Code,
		PresenterID:   s.PresenterID.String(),
		PresenterName: s.PresenterName,
		IsActive:      s.IsActive,
		Participants:  make([]ParticipantResponse, len(s.Participants)),
		CreatedAt:     s.CreatedAt,
	}
	for i, p := range s.Participants {
		out.Participants[i] = ParticipantResponse{
			ID:       p.ID.String(),
			Name:     p.Name,
			JoinedAt: p.JoinedAt,
		}
	}
	if s.CurrentPollID != nil {
		out.CurrentPollID = s.CurrentPollID.String()
	}
	return out
}
