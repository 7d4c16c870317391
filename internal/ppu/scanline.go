package ppu

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

// ScanlineState is a step of the Drawing phase.
type ScanlineState uint8

const (
	Discard        ScanlineState = iota // dropping the SCX%8 leading pixels
	Fetching                            // fetching background and emitting pixels
	SpriteFetching                      // background paused for a sprite fetch
	Complete                            // 160 pixels emitted
)

func (s ScanlineState) String() string {
	switch s {
	case Discard:
		return "Discard"
	case Fetching:
		return "Fetching"
	case SpriteFetching:
		return "SpriteFetching"
	case Complete:
		return "Complete"
	}
	return "ScanlineState(?)"
}

// ScanlineController drives the fetchers through the Drawing phase of
// a scanline, one dot at a time, and emits each column to the sink.
type ScanlineController struct {
	regs    *Registers
	buffer  *SpriteBuffer
	bg      *BackgroundFetcher
	obj     *SpriteFetcher
	bgFIFO  *FIFO
	objFIFO *FIFO
	sink    PixelSink

	state   ScanlineState
	column  int
	discard uint8

	// window bookkeeping, reset every frame
	windowTriggered bool
	windowLine      uint8
	windowUsed      bool
}

// Setup prepares the Drawing phase of the current scanline.
func (c *ScanlineController) Setup() {
	c.column = 0
	c.bg.Reset()
	c.objFIFO.Clear()
	c.windowUsed = false
	c.discard = c.regs.SCX & 7
	c.state = Fetching
	if c.discard > 0 {
		c.state = Discard
	}
}

// NewFrame resets the per frame window state.
func (c *ScanlineController) NewFrame() {
	c.windowTriggered = false
	c.windowLine = 0
}

// LatchWindow arms the window for the rest of the frame once it is
// enabled on a line at or below WY.
func (c *ScanlineController) LatchWindow(ly uint8) {
	if c.regs.LCDC.WindowEnabled && ly >= c.regs.WY {
		c.windowTriggered = true
	}
}

// Complete reports whether all 160 pixels of the line were emitted.
func (c *ScanlineController) Complete() bool {
	return c.state == Complete
}

// State returns the current step.
func (c *ScanlineController) State() ScanlineState {
	return c.state
}

// Step advances the Drawing phase by one dot.
func (c *ScanlineController) Step() {
	switch c.state {
	case Discard:
		c.bg.Step()
		if _, ok := c.bgFIFO.Read(); ok {
			c.discard--
		}
		if c.discard == 0 {
			c.state = Fetching
		}
	case Fetching:
		c.fetch()
	case SpriteFetching:
		c.obj.Step()
		if c.obj.Complete() {
			c.state = Fetching
		}
	case Complete:
	}
}

func (c *ScanlineController) fetch() {
	if c.atWindow() {
		c.bg.SwitchToWindow(c.windowLine)
		c.windowUsed = true
	}

	if c.regs.LCDC.SpriteEnabled {
		if _, ok := c.buffer.Get(c.column); ok {
			c.obj.Start(c.column)
			c.obj.Step()
			c.state = SpriteFetching
			return
		}
	}

	c.bg.Step()
	bg, ok := c.bgFIFO.Read()
	if !ok {
		return
	}
	if !c.regs.LCDC.BackgroundEnabled {
		bg.Color = 0
	}
	obj, hasObj := c.objFIFO.Read()

	c.sink.SetPixel(c.column, int(c.regs.LY), Combine(bg, obj, hasObj, c.regs))
	c.column++

	if c.column == ScreenWidth {
		c.state = Complete
		if c.windowUsed {
			c.windowLine++
		}
	}
}

// atWindow reports whether the fetcher should switch to the window at
// the current column.
func (c *ScanlineController) atWindow() bool {
	return !c.bg.Window() &&
		c.windowTriggered &&
		c.regs.LCDC.WindowEnabled &&
		c.column >= int(c.regs.WX)-7
}

var _ types.Stater = (*ScanlineController)(nil)

// Save implements the types.Stater interface.
func (c *ScanlineController) Save(s *types.State) {
	s.Write8(uint8(c.state))
	s.Write16(uint16(c.column))
	s.Write8(c.discard)
	s.WriteBool(c.windowTriggered)
	s.Write8(c.windowLine)
	s.WriteBool(c.windowUsed)
}

// Load implements the types.Stater interface.
func (c *ScanlineController) Load(s *types.State) {
	c.state = ScanlineState(s.Read8())
	c.column = int(s.Read16())
	c.discard = s.Read8()
	c.windowTriggered = s.ReadBool()
	c.windowLine = s.Read8()
	c.windowUsed = s.ReadBool()
}
