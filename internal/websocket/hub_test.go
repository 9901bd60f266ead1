package websocket

import (
	"context"
	"testing"
	"time"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func drain(c *Client) []byte {
	select {
	case msg := <-c.Send:
		return msg
	default:
		return nil
	}
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := startHub(t)

	client := NewClient(nil, "u1")
	hub.Register(client)
	waitFor(t, func() bool { return hub.GetClientCount() == 1 })

	hub.JoinRoom(client, "room:session:s1")
	waitFor(t, func() bool { return hub.GetRoomSize("room:session:s1") == 1 })

	hub.Unregister(client)
	waitFor(t, func() bool { return hub.GetClientCount() == 0 })
	if hub.GetRoomSize("room:session:s1") != 0 {
		t.Error("unregister left the client in its room")
	}
}

func TestBroadcastReachesRoomMembersOnly(t *testing.T) {
	hub := startHub(t)

	inRoom1 := NewClient(nil, "u1")
	inRoom2 := NewClient(nil, "u2")
	elsewhere := NewClient(nil, "u3")
	for _, c := range []*Client{inRoom1, inRoom2, elsewhere} {
		hub.Register(c)
	}
	hub.JoinRoom(inRoom1, "room:session:s1")
	hub.JoinRoom(inRoom2, "room:session:s1")
	hub.JoinRoom(elsewhere, "room:session:s2")
	waitFor(t, func() bool { return hub.GetRoomSize("room:session:s1") == 2 && hub.GetRoomSize("room:session:s2") == 1 })

	hub.Broadcast("room:session:s1", []byte("tally"))

	for _, c := range []*Client{inRoom1, inRoom2} {
		if got := drain(c); string(got) != "tally" {
			t.Errorf("room member got %q, want %q", got, "tally")
		}
	}
	if got := drain(elsewhere); got != nil {
		t.Errorf("client in another room received %q", got)
	}
}

func TestJoinRoomLeavesPreviousRoom(t *testing.T) {
	hub := startHub(t)

	client := NewClient(nil, "u1")
	hub.Register(client)

	hub.JoinRoom(client, "room:session:s1")
	waitFor(t, func() bool { return hub.GetRoomSize("room:session:s1") == 1 })

	hub.JoinRoom(client, "room:session:s2")
	waitFor(t, func() bool { return hub.GetRoomSize("room:session:s2") == 1 })

	if hub.GetRoomSize("room:session:s1") != 0 {
		t.Error("client still in old room after switching sessions")
	}
	if client.Room() != "room:session:s2" {
		t.Errorf("client room = %q, want room:session:s2", client.Room())
	}

	hub.Broadcast("room:session:s1", []byte("stale"))
	if got := drain(client); got != nil {
		t.Errorf("client received event from old room: %q", got)
	}
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	hub := startHub(t)

	client := NewClient(nil, "u1")
	hub.Register(client)
	hub.JoinRoom(client, "room:session:s1")
	waitFor(t, func() bool { return hub.GetRoomSize("room:session:s1") == 1 })

	hub.LeaveRoom(client)
	waitFor(t, func() bool { return client.Room() == "" })

	hub.Broadcast("room:session:s1", []byte("after-leave"))
	if got := drain(client); got != nil {
		t.Errorf("client received event after leaving: %q", got)
	}
}

func TestJoinAfterUnregisterIsIgnored(t *testing.T) {
	// Control requests queue independently, so a join_room enqueued just
	// before a disconnect can reach the loop after the unregister. The
	// join must not re-add the client: its Send channel is closed, and a
	// later Broadcast to the room would panic on it.
	hub := NewHub()

	client := NewClient(nil, "u1")
	hub.addClient(client)
	hub.removeClient(client)
	hub.joinRoom(client, "room:session:s1")

	if got := hub.GetRoomSize("room:session:s1"); got != 0 {
		t.Fatalf("room size = %d after join of unregistered client, want 0", got)
	}

	survivor := NewClient(nil, "u2")
	hub.addClient(survivor)
	hub.joinRoom(survivor, "room:session:s1")

	hub.Broadcast("room:session:s1", []byte("tally"))
	if got := drain(survivor); string(got) != "tally" {
		t.Errorf("room member got %q, want %q", got, "tally")
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := startHub(t)

	client := NewClient(nil, "u1")
	hub.Register(client)
	hub.JoinRoom(client, "room:session:s1")
	waitFor(t, func() bool { return hub.GetRoomSize("room:session:s1") == 1 })

	// Nothing reads Send; delivery past the buffer is dropped, never blocks.
	for i := 0; i < cap(client.Send)+10; i++ {
		hub.Broadcast("room:session:s1", []byte("x"))
	}
	if len(client.Send) != cap(client.Send) {
		t.Errorf("buffered = %d, want full buffer %d", len(client.Send), cap(client.Send))
	}
}
