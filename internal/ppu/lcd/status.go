package lcd

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

// WritableStatusMask selects the bits of STAT that software may write.
const WritableStatusMask = 0b0111_1000

// Status represents the LCD status register. Bits 0-2 are computed by
// the hardware and read only, bits 3-6 are interrupt source enables
// written by software and bit 7 always reads as 1.
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag                             (Read Only)
type Status struct {
	// CoincidenceInterrupt is set when the LYC=LY coincidence interrupt is
	// enabled.
	CoincidenceInterrupt bool
	// OAMInterrupt is set when the OAM interrupt is enabled.
	OAMInterrupt bool
	// VBlankInterrupt is set when the V-Blank interrupt is enabled.
	VBlankInterrupt bool
	// HBlankInterrupt is set when the H-Blank interrupt is enabled.
	HBlankInterrupt bool

	coincidence bool
	mode        Mode
}

// NewStatus returns a new Status.
func NewStatus() *Status {
	return &Status{}
}

// Mode returns the mode reported in bits 0-1.
func (s *Status) Mode() Mode {
	return s.mode
}

// SetMode sets the mode reported in bits 0-1.
func (s *Status) SetMode(mode Mode) {
	s.mode = mode
}

// Coincidence returns the LYC=LY flag.
func (s *Status) Coincidence() bool {
	return s.coincidence
}

// SetCoincidence sets the LYC=LY flag.
func (s *Status) SetCoincidence(c bool) {
	s.coincidence = c
}

// Write applies a software write. Only the interrupt enables are taken
// from value.
func (s *Status) Write(value uint8) {
	value &= WritableStatusMask
	s.CoincidenceInterrupt = value&types.Bit6 != 0
	s.OAMInterrupt = value&types.Bit5 != 0
	s.VBlankInterrupt = value&types.Bit4 != 0
	s.HBlankInterrupt = value&types.Bit3 != 0
}

// Read returns the value of the status register as seen by software.
func (s *Status) Read() uint8 {
	value := uint8(types.Bit7)
	if s.CoincidenceInterrupt {
		value |= types.Bit6
	}
	if s.OAMInterrupt {
		value |= types.Bit5
	}
	if s.VBlankInterrupt {
		value |= types.Bit4
	}
	if s.HBlankInterrupt {
		value |= types.Bit3
	}
	if s.coincidence {
		value |= types.Bit2
	}
	return value | uint8(s.mode)&0x03
}

// ModeInterrupt reports whether the interrupt source for mode is
// enabled. Drawing has no source and always reports false.
func (s *Status) ModeInterrupt(mode Mode) bool {
	switch mode {
	case HBlank:
		return s.HBlankInterrupt
	case VBlank:
		return s.VBlankInterrupt
	case OAMScan:
		return s.OAMInterrupt
	}
	return false
}
