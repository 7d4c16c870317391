package interrupts

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode (lcd.VBlank).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested on a rising edge of the STAT line
	// (types.STAT).
	LCDFlag = types.Bit1
)

// Service is the interrupt flag sink. Requested interrupts
// set the corresponding bit in the Flag register (types.IF)
// until software clears it. Enable mirrors types.IE.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)

	requests [8]uint64
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
	for i := 0; i < 8; i++ {
		if flag&(1<<i) != 0 {
			s.requests[i]++
		}
	}
}

// Pending reports whether the interrupt is set in the
// Flag register.
func (s *Service) Pending(flag uint8) bool {
	return s.Flag&flag != 0
}

// Acknowledge clears the interrupt from the Flag register.
func (s *Service) Acknowledge(flag uint8) {
	s.Flag &^= flag
}

// Requests returns the number of times the interrupt has
// been requested, regardless of whether it was already
// pending.
func (s *Service) Requests(flag uint8) uint64 {
	var n uint64
	for i := 0; i < 8; i++ {
		if flag&(1<<i) != 0 {
			n += s.requests[i]
		}
	}
	return n
}

// ReadFlag returns IF as seen by software. The upper 3
// bits are always set.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | 0xE0
}

// WriteFlag performs a software write to IF. Only the
// first 5 bits are used.
func (s *Service) WriteFlag(v uint8) uint8 {
	s.Flag = v & 0x1F
	return s.ReadFlag()
}

// WriteEnable performs a software write to IE.
func (s *Service) WriteEnable(v uint8) uint8 {
	s.Enable = v
	return v
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag != 0
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
//   - request counters (8 x uint64)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
	for i := range s.requests {
		s.requests[i] = st.Read64()
	}
}

// Save implements the types.Stater interface.
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
	for _, n := range s.requests {
		st.Write64(n)
	}
}
