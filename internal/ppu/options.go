package ppu

import "github.com/thelolagemann/gomeboy-ppu/pkg/log"

// Opt is a function that modifies a PPU instance.
type Opt func(p *PPU)

// WithLogger sets the logger used for LCD and frame events.
func WithLogger(l log.Logger) Opt {
	return func(p *PPU) {
		p.logger = l
	}
}

// WithLineObserver registers fn to be called at the end of the Drawing
// phase of each visible line, with the line and the number of dots it
// took.
func WithLineObserver(fn func(ly uint8, drawing int)) Opt {
	return func(p *PPU) {
		p.lineObserver = fn
	}
}

// WithRegisters writes the given display register values, in address
// order starting at LCDC, before the first cycle. LY and DMA are
// skipped.
func WithRegisters(values []uint8) Opt {
	return func(p *PPU) {
		for i, v := range values {
			p.Write(0xFF40+uint16(i), v)
		}
	}
}
