// Package gameboy drives the PPU the way a Game Boy does, from a single
// T-cycle clock shared with the memory bus, the interrupt flags and a
// scheduler for timed writes.
package gameboy

import (
	"fmt"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/thelolagemann/gomeboy-ppu/internal/interrupts"
	"github.com/thelolagemann/gomeboy-ppu/internal/mmu"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu"
	"github.com/thelolagemann/gomeboy-ppu/internal/scheduler"
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
	"github.com/thelolagemann/gomeboy-ppu/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ppu.CyclesPerFrame
)

// GameBoy owns the components the PPU is attached to.
type GameBoy struct {
	PPU        *ppu.PPU
	Bus        *mmu.Bus
	Interrupts *interrupts.Service
	Scheduler  *scheduler.Scheduler

	log.Logger

	sink    ppu.PixelSink
	ppuOpts []ppu.Opt

	script    []Write
	scriptPos int

	captureAt uint64
	onCapture func([]byte)

	state    []byte
	snapshot []byte
}

// NewGameBoy returns a new GameBoy with the LCD enabled at the start of
// line 0. A snapshot is loaded first, then writes scripted for cycle 0
// are applied before returning.
func NewGameBoy(opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Bus:        mmu.NewBus(),
		Interrupts: interrupts.NewService(),
		Scheduler:  scheduler.NewScheduler(),
		Logger:     log.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.PPU = ppu.New(g.Bus, g.Interrupts, g.sink, append([]ppu.Opt{ppu.WithLogger(g.Logger)}, g.ppuOpts...)...)
	g.attach()

	if g.state != nil && g.snapshot != nil {
		return nil, fmt.Errorf("gameboy: a snapshot and a state are mutually exclusive")
	}
	if g.snapshot != nil {
		if err := g.LoadSnapshot(g.snapshot); err != nil {
			return nil, err
		}
	}

	if g.state != nil {
		if err := g.LoadState(g.state); err != nil {
			return nil, err
		}
	} else {
		if len(g.script) > 0 {
			g.Scheduler.ScheduleEvent(scheduler.ScriptWrite, g.script[0].Cycle)
		}
		if g.onCapture != nil {
			g.Scheduler.ScheduleEvent(scheduler.StateCapture, g.captureAt)
		}
	}
	g.Scheduler.Tick(0)

	return g, nil
}

// attach maps the display and interrupt registers onto the bus.
func (g *GameBoy) attach() {
	for addr := types.LCDC; addr <= types.WX; addr++ {
		if addr == types.DMA {
			continue
		}
		a := addr
		g.Bus.ReserveAddress(a, func(v byte) byte {
			g.PPU.Write(a, v)
			return g.PPU.Read(a)
		})
		g.Bus.ReserveLazyReader(a, func() byte {
			return g.PPU.Read(a)
		})
	}

	g.Bus.ReserveAddress(types.IF, g.Interrupts.WriteFlag)
	g.Bus.ReserveLazyReader(types.IF, g.Interrupts.ReadFlag)
	g.Bus.ReserveAddress(types.IE, g.Interrupts.WriteEnable)
	g.Bus.ReserveLazyReader(types.IE, func() byte {
		return g.Interrupts.Enable
	})
	g.Bus.AttachGuard(g.PPU)

	g.Scheduler.RegisterEvent(scheduler.ScriptWrite, g.applyScript)
	g.Scheduler.RegisterEvent(scheduler.StateCapture, func() {
		if g.onCapture != nil {
			g.onCapture(g.State())
		}
	})
}

// Step advances the machine by a single T-cycle.
func (g *GameBoy) Step() {
	g.PPU.TCycle()
	g.Scheduler.Tick(1)
}

// Frame advances the machine by CyclesPerFrame T-cycles.
func (g *GameBoy) Frame() {
	for i := 0; i < CyclesPerFrame; i++ {
		g.Step()
	}
}

// RunFrames runs n frames.
func (g *GameBoy) RunFrames(n int) {
	for i := 0; i < n; i++ {
		g.Frame()
	}
	g.Debugf("gameboy: ran %d frames, cycle %d", n, g.Cycle())
}

// Cycle returns the number of T-cycles elapsed.
func (g *GameBoy) Cycle() uint64 {
	return g.Scheduler.Cycle()
}

// LoadSnapshot loads VRAM, OAM and the display registers.
func (g *GameBoy) LoadSnapshot(raw []byte) error {
	if err := g.Bus.LoadSnapshot(raw); err != nil {
		return err
	}
	g.Infof("loaded snapshot, LCDC=%s", g.PPU.Registers().LCDC)
	return nil
}

// applyScript applies every write due by the current cycle, and
// schedules the next.
func (g *GameBoy) applyScript() {
	now := g.Cycle()
	for ; g.scriptPos < len(g.script); g.scriptPos++ {
		w := g.script[g.scriptPos]
		if w.Cycle > now {
			g.Scheduler.ScheduleEvent(scheduler.ScriptWrite, w.Cycle-now)
			return
		}
		g.Bus.Write(w.Address, w.Value)
		g.Debugf("script: %s", w)
	}
}

// Dump returns a human readable dump of the display registers and the
// sprites found by the last OAM scan.
func (g *GameBoy) Dump() string {
	return fmt.Sprintf("%s\n%s", g.PPU, spew.Sdump(g.PPU.Registers(), g.PPU.SpriteBuffer()))
}

func sortScript(script []Write) []Write {
	s := append([]Write(nil), script...)
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Cycle < s[j].Cycle
	})
	return s
}
