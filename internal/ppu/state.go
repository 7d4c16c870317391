package ppu

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

var _ types.Stater = (*PPU)(nil)

// Save implements the types.Stater interface. Besides the registers,
// the in-flight scan and fetch state is saved, so a state taken in the
// middle of a scanline resumes on the same dot.
//
// The values are saved in the following order:
//   - registers
//   - sequencer (step, dot, drawing length, enabled, frames)
//   - STAT line
//   - sprite buffer, OAM scanner
//   - background FIFO, background fetcher
//   - sprite FIFO, sprite fetcher
//   - scanline controller
func (p *PPU) Save(s *types.State) {
	p.regs.save(s)
	s.Write8(uint8(p.step))
	s.Write16(uint16(p.dot))
	s.Write16(uint16(p.drawing))
	s.WriteBool(p.enabled)
	s.Write64(p.frames)
	p.ints.Save(s)
	p.buffer.Save(s)
	p.scanner.Save(s)
	p.bgFIFO.Save(s)
	p.bg.Save(s)
	p.objFIFO.Save(s)
	p.obj.Save(s)
	p.scanline.Save(s)
}

// Load implements the types.Stater interface.
func (p *PPU) Load(s *types.State) {
	p.regs.load(s)
	p.step = step(s.Read8())
	p.dot = int(s.Read16())
	p.drawing = int(s.Read16())
	p.enabled = s.ReadBool()
	p.frames = s.Read64()
	p.ints.Load(s)
	p.buffer.Load(s)
	p.scanner.Load(s)
	p.bgFIFO.Load(s)
	p.bg.Load(s)
	p.objFIFO.Load(s)
	p.obj.Load(s)
	p.scanline.Load(s)
}
