package scheduler

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

func TestScheduler_Tick(t *testing.T) {
	s := NewScheduler()
	var fired []uint64
	s.RegisterEvent(ScriptWrite, func() { fired = append(fired, s.Cycle()) })

	s.Tick(5)
	s.ScheduleEvent(ScriptWrite, 10)

	s.Tick(9)
	if len(fired) != 0 {
		t.Fatalf("expected no event before cycle 15, got %v", fired)
	}
	s.Tick(1)
	if diff := deep.Equal(fired, []uint64{15}); diff != nil {
		t.Error(diff)
	}
	s.Tick(100)
	if len(fired) != 1 {
		t.Errorf("expected the event to fire once, got %v", fired)
	}
}

func TestScheduler_TickPastSeveral(t *testing.T) {
	s := NewScheduler()
	var order []EventType
	s.RegisterEvent(ScriptWrite, func() { order = append(order, ScriptWrite) })
	s.RegisterEvent(StateCapture, func() { order = append(order, StateCapture) })

	s.ScheduleEvent(StateCapture, 20)
	s.ScheduleEvent(ScriptWrite, 10)
	s.Tick(50)

	if diff := deep.Equal(order, []EventType{ScriptWrite, StateCapture}); diff != nil {
		t.Error(diff)
	}
	if s.String() != "" {
		t.Errorf("expected no events left, got %s", s)
	}
}

func TestScheduler_SameCycleKeepsOrder(t *testing.T) {
	s := NewScheduler()
	var order []EventType
	s.RegisterEvent(ScriptWrite, func() { order = append(order, ScriptWrite) })
	s.RegisterEvent(StateCapture, func() { order = append(order, StateCapture) })

	s.ScheduleEvent(StateCapture, 0)
	s.ScheduleEvent(ScriptWrite, 0)
	s.Tick(0)

	if diff := deep.Equal(order, []EventType{StateCapture, ScriptWrite}); diff != nil {
		t.Error(diff)
	}
}

func TestScheduler_Reschedule(t *testing.T) {
	s := NewScheduler()
	n := 0
	s.RegisterEvent(ScriptWrite, func() {
		n++
		if n < 3 {
			s.ScheduleEvent(ScriptWrite, 0)
		}
	})

	s.ScheduleEvent(ScriptWrite, 4)
	s.ScheduleEvent(ScriptWrite, 2)
	if c, ok := s.Until(ScriptWrite); !ok || c != 2 {
		t.Fatalf("expected the event to be replaced, due in 2, got %d", c)
	}

	s.Tick(2)
	if n != 3 {
		t.Errorf("expected handlers scheduled for now to run in the same tick, got %d", n)
	}
}

func TestScheduler_Deschedule(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.RegisterEvent(StateCapture, func() { fired = true })

	s.ScheduleEvent(ScriptWrite, 5)
	s.ScheduleEvent(StateCapture, 5)
	s.DescheduleEvent(StateCapture)
	s.DescheduleEvent(StateCapture)
	s.Tick(10)

	if fired {
		t.Errorf("expected descheduled event not to fire")
	}
	if _, ok := s.Until(StateCapture); ok {
		t.Errorf("expected event to be unscheduled")
	}
}

func TestScheduler_SaveLoad(t *testing.T) {
	a := NewScheduler()
	a.Tick(100)
	a.ScheduleEvent(StateCapture, 30)
	a.ScheduleEvent(ScriptWrite, 7)

	st := types.NewState()
	a.Save(st)

	b := NewScheduler()
	fired := 0
	b.RegisterEvent(ScriptWrite, func() { fired++ })
	b.ScheduleEvent(StateCapture, 1)
	b.Load(types.StateFromBytes(st.Bytes()))

	if b.Cycle() != 100 {
		t.Errorf("expected cycle 100, got %d", b.Cycle())
	}
	if a.String() != b.String() {
		t.Errorf("expected %s, got %s", a, b)
	}
	b.Tick(7)
	if fired != 1 {
		t.Errorf("expected restored event to fire at cycle 107")
	}
}
