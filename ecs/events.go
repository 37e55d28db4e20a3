package ecs

import "github.com/jakecoffman/cp"

// Event types emitted by the simulation core. Consumers (camera, audio,
// particle decomposition) drain the queue after each tick; the core never
// waits on them.
const (
	EventAttachmentChanged = "attachment_changed"
	EventFragmentSpawn     = "fragment_spawn"
	EventBallResized       = "ball_resized"
)

type Event struct {
	Type string
	Data any
}

// AttachmentChanged is emitted on every attach/detach transition.
type AttachmentChanged struct {
	Beetle   Entity
	Ball     Entity
	Attached bool
	Thrown   bool
}

// FragmentSpawn describes dung fragments to scatter after an impact. The
// decomposition collaborator owns the spawned objects; the core only
// describes them.
type FragmentSpawn struct {
	Position         cp.Vector
	Count            int
	ImpulseDirection cp.Vector
	ImpulseMagnitude float64
}

// BallResized is emitted after every growth or damage rebuild.
type BallResized struct {
	Ball      Entity
	OldRadius float64
	NewRadius float64
}

// EventQueue is a FIFO drained once per tick by the game loop.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all queued events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
