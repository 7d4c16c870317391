package ppu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/lcd"
	"github.com/thelolagemann/gomeboy-ppu/pkg/log"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

const (
	// DotsPerLine is the number of T-cycles in every scanline.
	DotsPerLine = 456
	// OAMScanDots is the fixed length of the OAM scan.
	OAMScanDots = 80
	// LinesPerFrame is the number of scanlines, including the 10
	// VBlank lines.
	LinesPerFrame = 154
	// CyclesPerFrame is the number of T-cycles in a frame.
	CyclesPerFrame = DotsPerLine * LinesPerFrame
)

// Memory is the memory the PPU fetches tile data, tile maps and
// sprite attributes from.
type Memory interface {
	Get(address uint16) uint8
}

// Interrupter receives interrupt requests.
type Interrupter interface {
	Request(flag uint8)
}

// PixelSink receives the pixels produced by the PPU.
type PixelSink interface {
	// SetPixel is called once for every visible pixel with a shade
	// in the range 0-3.
	SetPixel(x, y int, shade uint8)
	// FrameComplete is called when LY wraps back to 0.
	FrameComplete()
}

// step is a step of the scanline sequencer.
type step uint8

const (
	stepOAMSetup step = iota
	stepOAMScan
	stepDrawingSetup
	stepDrawing
	stepHBlank
	stepVBlank
)

var stepNames = [...]string{"OAMSetup", "OAMScan", "DrawingSetup", "Drawing", "HBlank", "VBlank"}

func (s step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return fmt.Sprintf("step(%d)", s)
}

// PPU implements the Game Boy's (P)icture (P)rocessing (U)nit at T-cycle
// granularity.
//
// Every visible scanline (LY 0-143) runs OAM scan for 80 dots, then
// Drawing until 160 pixels have been emitted, then HBlank until the
// line has lasted 456 dots. LY 144-153 are VBlank lines of 456 dots
// each, after which LY wraps to 0 and a new frame begins.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	regs *Registers
	mem  Memory
	sink PixelSink
	ints *InterruptController

	buffer   SpriteBuffer
	bgFIFO   FIFO
	objFIFO  FIFO
	scanner  *OAMScanner
	bg       *BackgroundFetcher
	obj      *SpriteFetcher
	scanline *ScanlineController

	step    step
	dot     int
	drawing int
	enabled bool
	frames  uint64

	logger       log.Logger
	lineObserver func(ly uint8, drawing int)
}

// New returns a PPU fetching from mem, requesting interrupts from irq
// and emitting pixels to sink. The LCD starts enabled with LCDC=0x91,
// at the beginning of line 0.
func New(mem Memory, irq Interrupter, sink PixelSink, opts ...Opt) *PPU {
	if sink == nil {
		sink = nullSink{}
	}
	p := &PPU{
		regs:    newRegisters(),
		mem:     mem,
		sink:    sink,
		enabled: true,
		logger:  log.NewNullLogger(),
	}
	p.ints = NewInterruptController(p.regs, irq)
	p.scanner = NewOAMScanner(mem, p.regs, &p.buffer)
	p.bg = NewBackgroundFetcher(mem, p.regs, &p.bgFIFO)
	p.obj = NewSpriteFetcher(mem, p.regs, &p.buffer, &p.objFIFO)
	p.scanline = &ScanlineController{
		regs:    p.regs,
		buffer:  &p.buffer,
		bg:      p.bg,
		obj:     p.obj,
		bgFIFO:  &p.bgFIFO,
		objFIFO: &p.objFIFO,
		sink:    sink,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.ints.CheckCoincidence()
	return p
}

// TCycle advances the PPU by a single T-cycle.
func (p *PPU) TCycle() {
	if !p.regs.LCDC.Enabled {
		if p.enabled {
			p.enabled = false
			p.ints.Suspend()
			p.logger.Debugf("ppu: lcd disabled at LY=%d dot=%d", p.regs.LY, p.dot)
		}
		return
	}
	if !p.enabled {
		p.enabled = true
		p.regs.LY = 0
		p.dot = 0
		p.step = stepOAMSetup
		p.scanline.NewFrame()
		p.ints.CheckCoincidence()
		p.logger.Debugf("ppu: lcd enabled")
		return
	}

	switch p.step {
	case stepOAMSetup:
		p.ints.SetMode(lcd.OAMScan)
		p.scanner.Setup(p.regs.LY)
		p.scanline.LatchWindow(p.regs.LY)
		p.scanner.Step()
		p.step = stepOAMScan
	case stepOAMScan:
		p.scanner.Step()
		if p.scanner.Done() {
			p.step = stepDrawingSetup
		}
	case stepDrawingSetup:
		p.ints.SetMode(lcd.Drawing)
		p.scanline.Setup()
		p.drawing = 0
		p.draw()
	case stepDrawing:
		p.draw()
	case stepHBlank, stepVBlank:
	}

	p.dot++
	if p.dot == DotsPerLine {
		p.endLine()
	}
}

// draw performs one dot of the Drawing phase, entering HBlank once the
// line has been drawn.
func (p *PPU) draw() {
	p.scanline.Step()
	p.drawing++
	if !p.scanline.Complete() {
		p.step = stepDrawing
		return
	}

	p.ints.SetMode(lcd.HBlank)
	p.step = stepHBlank
	if p.lineObserver != nil {
		p.lineObserver(p.regs.LY, p.drawing)
	}
}

// endLine moves to the next scanline.
func (p *PPU) endLine() {
	if debug && p.step != stepHBlank && p.step != stepVBlank {
		panic(fmt.Sprintf("ppu: line %d ended during %s after %d dots of drawing", p.regs.LY, p.step, p.drawing))
	}
	p.dot = 0
	p.regs.LY++

	switch {
	case p.regs.LY == ScreenHeight:
		p.step = stepVBlank
		p.ints.SetMode(lcd.VBlank)
		p.ints.RequestVBlank()
	case p.regs.LY == LinesPerFrame:
		p.regs.LY = 0
		p.step = stepOAMSetup
		p.scanline.NewFrame()
		p.frames++
		p.sink.FrameComplete()
		p.logger.Debugf("ppu: frame %d complete", p.frames)
	case p.regs.LY > ScreenHeight:
		p.step = stepVBlank
	default:
		p.step = stepOAMSetup
	}

	p.ints.CheckCoincidence()
}

// Mode returns the mode reported in STAT.
func (p *PPU) Mode() lcd.Mode {
	return p.regs.STAT.Mode()
}

// Dot returns the number of T-cycles elapsed on the current scanline.
func (p *PPU) Dot() int {
	return p.dot
}

// Frames returns the number of frames completed.
func (p *PPU) Frames() uint64 {
	return p.frames
}

// SpriteBuffer returns the sprites found by the last OAM scan.
func (p *PPU) SpriteBuffer() []Sprite {
	return p.buffer.Sprites()
}

// VRAMAccessible reports whether the CPU may access VRAM.
func (p *PPU) VRAMAccessible() bool {
	return !p.regs.LCDC.Enabled || p.Mode() != lcd.Drawing
}

// OAMAccessible reports whether the CPU may access OAM.
func (p *PPU) OAMAccessible() bool {
	if !p.regs.LCDC.Enabled {
		return true
	}
	m := p.Mode()
	return m != lcd.OAMScan && m != lcd.Drawing
}

// String implements fmt.Stringer.
func (p *PPU) String() string {
	return fmt.Sprintf("LY=%03d dot=%03d mode=%s step=%s LCDC=%s STAT=%02X",
		p.regs.LY, p.dot, p.Mode(), p.step, p.regs.LCDC, p.regs.STAT.Read())
}

type nullSink struct{}

func (nullSink) SetPixel(int, int, uint8) {}

func (nullSink) FrameComplete() {}
