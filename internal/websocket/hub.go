package websocket

import (
	"context"
	"sync"
)

// roomRequest represents a room join/leave request
type roomRequest struct {
	client *Client
	room   string
	join   bool // true = join, false = leave
}

// Hub manages WebSocket client connections and their room membership. A
// client occupies at most one room at a time: joining a new room leaves the
// old one, so a viewer switching sessions never receives events from both.
type Hub struct {
	mu sync.RWMutex

	// clients maps client ID to client (for cleanup)
	clients map[string]*Client

	// rooms maps room name to set of clients in it
	rooms map[string]map[*Client]struct{}

	// Control channels
	register   chan *Client     // New client connections
	unregister chan *Client     // Client disconnections
	membership chan roomRequest // Join/leave requests
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		membership: make(chan roomRequest, 512),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case req := <-h.membership:
			if req.join {
				h.joinRoom(req.client, req.room)
			} else {
				h.leaveRoom(req.client)
			}
		}
	}
}

// Register adds a new client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinRoom moves a client into a room, leaving its current room if any
func (h *Hub) JoinRoom(client *Client, room string) {
	h.membership <- roomRequest{client: client, room: room, join: true}
}

// LeaveRoom removes a client from its current room
func (h *Hub) LeaveRoom(client *Client) {
	h.membership <- roomRequest{client: client, join: false}
}

// Broadcast sends a message to all clients in a room. Delivery is
// best-effort: clients with a full send buffer drop the message.
func (h *Hub) Broadcast(room string, payload []byte) {
	h.mu.RLock()
	clients := h.rooms[room]
	for c := range clients {
		c.SendMessage(payload)
	}
	h.mu.RUnlock()
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetRoomSize returns the number of clients in a room
func (h *Hub) GetRoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// addClient adds a new client to the hub (internal)
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
}

// removeClient removes a client and its room membership (internal)
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.detachLocked(client)
	delete(h.clients, client.ID)
	close(client.Send)
}

// joinRoom moves a client into a room (internal)
func (h *Hub) joinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A join queued behind a disconnect must not re-add a client whose
	// Send channel is already closed.
	if current, ok := h.clients[client.ID]; !ok || current != client {
		return
	}

	h.detachLocked(client)

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
	client.setRoom(room)
}

// leaveRoom removes a client from its current room (internal)
func (h *Hub) leaveRoom(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(client)
}

// detachLocked drops the client from its current room, pruning empty rooms.
// Caller must hold h.mu.
func (h *Hub) detachLocked(client *Client) {
	room := client.Room()
	if room == "" {
		return
	}
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	client.setRoom("")
}
