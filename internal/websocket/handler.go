package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"livepoll/internal/events"
	"livepoll/internal/services"
	"livepoll/internal/transport/httpdto"
)

// Inbound frame actions
const (
	actionJoinRoom  = "join_room"
	actionLeaveRoom = "leave_room"
)

type inboundFrame struct {
	Action    string `json:"action"`
	SessionID string `json:"session_id,omitempty"`
}

type Handler struct {
	auth     *services.AuthService
	sessions *services.SessionService
	hub      *Hub
}

func NewHandler(auth *services.AuthService, sessions *services.SessionService, hub *Hub) *Handler {
	return &Handler{auth: auth, sessions: sessions, hub: hub}
}

func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	claims, err := h.auth.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, claims.UserID)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	go client.WriteLoop(ctx)

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		h.handleFrame(c.Request.Context(), client, raw)
	}

	h.hub.Unregister(client)
}

func (h *Handler) handleFrame(ctx context.Context, client *Client, raw []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		h.sendEvent(client, events.EventTypeError, events.AggregateTypeSession, "", gin.H{"message": "malformed frame"})
		return
	}

	switch frame.Action {
	case actionJoinRoom:
		sessionID, err := uuid.Parse(frame.SessionID)
		if err != nil {
			h.sendEvent(client, events.EventTypeError, events.AggregateTypeSession, frame.SessionID, gin.H{"message": "invalid session id"})
			return
		}
		// Only rooms backed by a known session can be joined.
		if _, err := h.sessions.Get(ctx, sessionID); err != nil {
			h.sendEvent(client, events.EventTypeError, events.AggregateTypeSession, frame.SessionID, gin.H{"message": "session not found"})
			return
		}
		h.hub.JoinRoom(client, events.SessionRoom(frame.SessionID))
		h.sendEvent(client, events.EventTypeRoomJoined, events.AggregateTypeSession, frame.SessionID, gin.H{"session_id": frame.SessionID})
	case actionLeaveRoom:
		h.hub.LeaveRoom(client)
		h.sendEvent(client, events.EventTypeRoomLeft, events.AggregateTypeSession, frame.SessionID, gin.H{})
	default:
		h.sendEvent(client, events.EventTypeError, events.AggregateTypeSession, "", gin.H{"message": "unknown action"})
	}
}

func (h *Handler) sendEvent(client *Client, eventType, aggregateType, aggregateID string, payload any) {
	envelope, err := events.NewEnvelope(eventType, aggregateType, aggregateID, payload)
	if err != nil {
		return
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	client.SendMessage(raw)
}
