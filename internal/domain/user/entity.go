package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the part a user declared at registration. It carries no
// authorization semantics; the engine treats it as display metadata.
type Role string

const (
	RolePresenter   Role = "presenter"
	RoleParticipant Role = "participant"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RolePresenter || r == RoleParticipant
}

// User represents a registered identity. Immutable after creation.
type User struct {
	ID          uuid.UUID
	DisplayName string
	Role        Role
	CreatedAt   time.Time
}
