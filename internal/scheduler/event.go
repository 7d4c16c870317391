package scheduler

// EventType identifies a kind of event. Only one event of each type
// can be scheduled at a time.
type EventType int

const (
	// ScriptWrite applies the next due register or memory write of a
	// write script.
	ScriptWrite EventType = iota
	// StateCapture captures a save state at a requested cycle.
	StateCapture

	eventTypes
)

var eventNames = [...]string{"ScriptWrite", "StateCapture"}

func (e EventType) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "EventType(?)"
}

type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}

func (e *Event) Reset() {
	e.cycle = 0
	e.scheduled = false
	e.next = nil
}
