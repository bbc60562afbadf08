package game

// EventKind names something a presentation layer may want to play or show.
type EventKind string

const (
	EventPaddleHitLeft  EventKind = "ball-paddle-hit-left"
	EventPaddleHitRight EventKind = "ball-paddle-hit-right"
	EventWallBounce     EventKind = "wall-bounce"
	EventGoalScored     EventKind = "goal-scored"
	EventMatchStarted   EventKind = "match-started"
	EventMatchStopped   EventKind = "match-stopped"
	EventMatchWon       EventKind = "match-won"
)

// Event is emitted by the match. Player, Score and MatchPoint are only set
// for goal and win events.
type Event struct {
	Kind       EventKind `json:"kind" msgpack:"kind"`
	Player     int       `json:"player" msgpack:"player"`
	Score      int       `json:"score" msgpack:"score"`
	MatchPoint bool      `json:"matchPoint" msgpack:"matchPoint"`
}

// Notifier receives match events. Implementations must not call back into
// the match.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// EventRecorder buffers events until drained.
type EventRecorder struct {
	events []Event
}

func (r *EventRecorder) Notify(e Event) { r.events = append(r.events, e) }

// Drain returns the buffered events and empties the buffer.
func (r *EventRecorder) Drain() []Event {
	events := r.events
	r.events = nil
	return events
}
