package events

// Event type constants follow the format: domain.action

// Poll lifecycle events fanned out to session rooms
const (
	EventTypePollStarted = "poll.started"
	EventTypePollTally   = "poll.tally"
	EventTypePollEnded   = "poll.ended"
)

// Room lifecycle events delivered to a single client
const (
	EventTypeRoomJoined = "room.joined"
	EventTypeRoomLeft   = "room.left"
	EventTypeError      = "error"
)

// Aggregate type constants
const (
	AggregateTypePoll    = "poll"
	AggregateTypeSession = "session"
)

// Room name prefix. One room per session.
const RoomPrefixSession = "room:session:"

// SessionRoom returns the room name for a session id.
func SessionRoom(sessionID string) string {
	return RoomPrefixSession + sessionID
}
