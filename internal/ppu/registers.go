package ppu

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/lcd"
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

// Registers holds the display registers mapped at 0xFF40-0xFF4B. LCDC
// and STAT are kept decoded, the rest are raw bytes.
type Registers struct {
	LCDC *lcd.Controller
	STAT *lcd.Status

	LY, LYC    uint8
	SCY, SCX   uint8
	WY, WX     uint8
	BGP        uint8
	OBP0, OBP1 uint8
}

func newRegisters() *Registers {
	return &Registers{
		LCDC: lcd.NewController(0x91),
		STAT: lcd.NewStatus(),
		BGP:  0xFC,
		OBP0: 0xFF,
		OBP1: 0xFF,
	}
}

// Read returns the value of the display register at address as seen
// by software. Addresses outside the register block read 0xFF.
func (p *PPU) Read(address uint16) uint8 {
	r := p.regs
	switch address {
	case types.LCDC:
		return r.LCDC.Read()
	case types.STAT:
		return r.STAT.Read()
	case types.SCY:
		return r.SCY
	case types.SCX:
		return r.SCX
	case types.LY:
		return r.LY
	case types.LYC:
		return r.LYC
	case types.BGP:
		return r.BGP
	case types.OBP0:
		return r.OBP0
	case types.OBP1:
		return r.OBP1
	case types.WY:
		return r.WY
	case types.WX:
		return r.WX
	}
	return 0xFF
}

// Write performs a software write to the display register at address.
// LY is read only, and writes outside the register block are ignored.
// Writes to STAT and LYC re-evaluate the STAT interrupt line.
func (p *PPU) Write(address uint16, value uint8) {
	r := p.regs
	switch address {
	case types.LCDC:
		r.LCDC.Write(value)
	case types.STAT:
		r.STAT.Write(value)
		p.ints.Update()
	case types.SCY:
		r.SCY = value
	case types.SCX:
		r.SCX = value
	case types.LYC:
		r.LYC = value
		p.ints.CheckCoincidence()
	case types.BGP:
		r.BGP = value
	case types.OBP0:
		r.OBP0 = value
	case types.OBP1:
		r.OBP1 = value
	case types.WY:
		r.WY = value
	case types.WX:
		r.WX = value
	}
}

// Registers returns the display registers. They must only be mutated
// through Write.
func (p *PPU) Registers() *Registers {
	return p.regs
}

func (r *Registers) save(s *types.State) {
	s.Write8(r.LCDC.Read())
	s.Write8(r.STAT.Read())
	s.WriteBool(r.STAT.Coincidence())
	s.Write8(uint8(r.STAT.Mode()))
	s.WriteData([]byte{r.LY, r.LYC, r.SCY, r.SCX, r.WY, r.WX, r.BGP, r.OBP0, r.OBP1})
}

func (r *Registers) load(s *types.State) {
	r.LCDC.Write(s.Read8())
	r.STAT.Write(s.Read8())
	r.STAT.SetCoincidence(s.ReadBool())
	r.STAT.SetMode(lcd.Mode(s.Read8()))
	b := make([]byte, 9)
	s.ReadData(b)
	r.LY, r.LYC, r.SCY, r.SCX, r.WY, r.WX, r.BGP, r.OBP0, r.OBP1 = b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7], b[8]
}
