package scheduler

import (
	"fmt"
	"math"
	"strings"
)

// Scheduler is a simple event scheduler that can be used to schedule events
// to be executed at a specific cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is ticked, every
// event scheduled up to the current cycle is executed and removed from the
// list. Events scheduled for the same cycle run in the order they were
// scheduled.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]*Event // only one event of each type can be scheduled at a time
	nextEventAt   uint64
}

// NewScheduler returns a Scheduler at cycle 0 with no events.
func NewScheduler() *Scheduler {
	s := &Scheduler{nextEventAt: math.MaxUint64}

	// initialize the events with the number of event types
	// to avoid the cost of allocating a new event for each
	// scheduled event
	for i := range s.events {
		s.events[i] = &Event{eventType: EventType(i)}
	}

	return s
}

// Cycle returns the number of cycles the scheduler has been ticked.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RegisterEvent registers a function of the EventType to be called when
// the event is scheduled for execution.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by the given number of cycles, and executes
// all events scheduled up to and including the new cycle. Handlers may
// schedule further events, which are executed in the same Tick when due.
func (s *Scheduler) Tick(c uint64) {
	s.cycles += c

	// skip if there are no events scheduled
	if s.nextEventAt > s.cycles {
		return
	}

	for s.root != nil && s.root.cycle <= s.cycles {
		event := s.root
		s.root = event.next
		event.next = nil
		event.scheduled = false
		s.updateNext()

		if h := s.eventHandlers[event.eventType]; h != nil {
			h()
		}
	}
}

// ScheduleEvent schedules an event to be executed the given number of
// cycles from now. An event of the same type that is already scheduled
// is replaced.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycle uint64) {
	s.DescheduleEvent(eventType)

	this := s.events[eventType]
	this.cycle = s.cycles + cycle
	this.scheduled = true
	this.next = nil

	if s.root == nil || this.cycle < s.root.cycle {
		this.next = s.root
		s.root = this
		s.updateNext()
		return
	}

	// insert after every event due at or before this one
	event := s.root
	for event.next != nil && event.next.cycle <= this.cycle {
		event = event.next
	}
	this.next = event.next
	event.next = this
}

// DescheduleEvent removes the event from the list, if it is scheduled.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	this := s.events[eventType]
	if !this.scheduled {
		return
	}

	var prev *Event
	for event := s.root; event != nil; prev, event = event, event.next {
		if event != this {
			continue
		}
		if prev == nil {
			s.root = event.next
		} else {
			prev.next = event.next
		}
		break
	}
	this.Reset()
	s.updateNext()
}

// Until returns the number of cycles until the event is executed, and
// false when it is not scheduled.
func (s *Scheduler) Until(eventType EventType) (uint64, bool) {
	e := s.events[eventType]
	if !e.scheduled {
		return 0, false
	}
	return e.cycle - s.cycles, true
}

func (s *Scheduler) updateNext() {
	if s.root == nil {
		s.nextEventAt = math.MaxUint64
		return
	}
	s.nextEventAt = s.root.cycle
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%s:%d->", event.eventType, event.cycle)
	}
	return b.String()
}
