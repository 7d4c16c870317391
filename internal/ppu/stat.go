package ppu

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/interrupts"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/lcd"
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

// InterruptController maintains the STAT interrupt line and raises the
// VBlank and LCD STAT interrupts.
//
// The STAT line is the OR of the enabled mode source for the current
// mode and the LYC=LY source. The LCD STAT interrupt is only requested
// when the line goes from low to high, so a line held high by one source
// hides the edges of the others. Drawing has no source, so entering it
// lets the line fall and re-arm.
type InterruptController struct {
	regs *Registers
	irq  Interrupter
	line bool
}

// NewInterruptController returns a controller requesting interrupts
// from irq.
func NewInterruptController(regs *Registers, irq Interrupter) *InterruptController {
	return &InterruptController{regs: regs, irq: irq}
}

// Line returns the current level of the STAT line.
func (c *InterruptController) Line() bool {
	return c.line
}

// SetMode reports a mode transition, updating STAT and the line. It is
// ignored while the LCD is off.
func (c *InterruptController) SetMode(mode lcd.Mode) {
	if !c.regs.LCDC.Enabled {
		return
	}
	c.regs.STAT.SetMode(mode)
	c.Update()
}

// CheckCoincidence compares LY with LYC, updating the coincidence flag
// and the line. It is ignored while the LCD is off, so the flag keeps
// its last value.
func (c *InterruptController) CheckCoincidence() {
	if !c.regs.LCDC.Enabled {
		return
	}
	c.regs.STAT.SetCoincidence(c.regs.LY == c.regs.LYC)
	c.Update()
}

// Update recomputes the STAT line and requests the LCD STAT interrupt
// on a rising edge. It is ignored while the LCD is off.
func (c *InterruptController) Update() {
	if !c.regs.LCDC.Enabled {
		return
	}

	stat := c.regs.STAT
	line := stat.ModeInterrupt(stat.Mode()) ||
		stat.Coincidence() && stat.CoincidenceInterrupt

	if !c.line && line {
		c.irq.Request(interrupts.LCDFlag)
	}
	c.line = line
}

// RequestVBlank requests the VBlank interrupt.
func (c *InterruptController) RequestVBlank() {
	c.irq.Request(interrupts.VBlankFlag)
}

// Suspend reports the LCD being switched off. STAT reports HBlank, the
// coincidence flag is kept and the line drops without an interrupt.
func (c *InterruptController) Suspend() {
	c.regs.STAT.SetMode(lcd.HBlank)
	c.line = false
}

var _ types.Stater = (*InterruptController)(nil)

// Save implements the types.Stater interface.
func (c *InterruptController) Save(s *types.State) {
	s.WriteBool(c.line)
}

// Load implements the types.Stater interface.
func (c *InterruptController) Load(s *types.State) {
	c.line = s.ReadBool()
}
