package gameboy

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu"
	"github.com/thelolagemann/gomeboy-ppu/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger shared by the GameBoy and its PPU.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithSink sets where the PPU emits its pixels.
func WithSink(sink ppu.PixelSink) Opt {
	return func(gb *GameBoy) {
		gb.sink = sink
	}
}

// WithScript applies the writes at their cycles, through the bus as
// the CPU would.
func WithScript(script []Write) Opt {
	return func(gb *GameBoy) {
		gb.script = sortScript(script)
	}
}

// WithSnapshot loads VRAM, OAM and the display registers from raw
// before any scripted write is applied.
func WithSnapshot(raw []byte) Opt {
	return func(gb *GameBoy) {
		gb.snapshot = raw
	}
}

// WithState restores a save state taken with State. The same script
// must be supplied for scripted writes to resume.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}

// WithLineObserver is called with the length of the Drawing phase of
// every visible line.
func WithLineObserver(fn func(ly uint8, drawing int)) Opt {
	return func(gb *GameBoy) {
		gb.ppuOpts = append(gb.ppuOpts, ppu.WithLineObserver(fn))
	}
}

// WithStateCapture calls fn with a save state once cycle T-cycles have
// elapsed.
func WithStateCapture(cycle uint64, fn func([]byte)) Opt {
	return func(gb *GameBoy) {
		gb.captureAt = cycle
		gb.onCapture = fn
	}
}
