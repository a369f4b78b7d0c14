package hotkey

import "time"

// Key is a platform-independent key code from the hook's key table.
type Key uint16

// Kind distinguishes press and release transitions.
type Kind int

const (
	Press Kind = iota
	Release
)

func (k Kind) String() string {
	if k == Release {
		return "release"
	}
	return "press"
}

// Event is one key transition.
type Event struct {
	Kind Kind
	Key  Key
	When time.Time
}

// Role is the part a key plays in the configured combo.
type Role int

const (
	RoleOther Role = iota
	RolePrimary
	RoleSecondary
)

func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleSecondary:
		return "secondary"
	default:
		return "other"
	}
}
