package sim

import "github.com/vovakirdan/karel-quest/internal/core"

// EventKind identifies a one-shot simulation event.
type EventKind int

const (
	EventPickup  EventKind = iota // a beeper was collected
	EventFell                     // the character fell out of the world and respawned
	EventVictory                  // the goal was reached
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "pickup"
	case EventFell:
		return "fell"
	case EventVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Event is emitted by the tick it happened in. Pos is the beeper center for
// pickups and the character position otherwise.
type Event struct {
	Kind   EventKind
	Pos    core.Vec2
	Points int
}
