package scheduler

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

var _ types.Stater = (*Scheduler)(nil)

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - cycles (uint64)
//   - for each event type, whether it is scheduled (bool) and
//     the cycle it is due (uint64)
func (s *Scheduler) Save(st *types.State) {
	st.Write64(s.cycles)
	for _, e := range s.events {
		st.WriteBool(e.scheduled)
		st.Write64(e.cycle)
	}
}

// Load implements the types.Stater interface. Registered handlers are
// kept.
func (s *Scheduler) Load(st *types.State) {
	for i := range s.events {
		s.DescheduleEvent(EventType(i))
	}

	cycles := st.Read64()
	due := make([]uint64, len(s.events))
	scheduled := make([]bool, len(s.events))
	for i := range s.events {
		scheduled[i] = st.ReadBool()
		due[i] = st.Read64()
	}

	s.cycles = 0
	for i := range s.events {
		if scheduled[i] {
			s.ScheduleEvent(EventType(i), due[i])
		}
	}
	s.cycles = cycles
}
