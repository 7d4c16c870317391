package gameboy

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-ppu/internal/interrupts"
	"github.com/thelolagemann/gomeboy-ppu/internal/mmu"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu"
	"github.com/thelolagemann/gomeboy-ppu/internal/scheduler"
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

var _ types.Stater = (*GameBoy)(nil)

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - bus (VRAM, OAM)
//   - interrupts
//   - PPU
//   - scheduler
//   - script position (uint32)
func (g *GameBoy) Save(s *types.State) {
	g.Bus.Save(s)
	g.Interrupts.Save(s)
	g.PPU.Save(s)
	g.Scheduler.Save(s)
	s.Write32(uint32(g.scriptPos))
}

// Load implements the types.Stater interface.
func (g *GameBoy) Load(s *types.State) {
	g.Bus.Load(s)
	g.Interrupts.Load(s)
	g.PPU.Load(s)
	g.Scheduler.Load(s)
	g.scriptPos = int(s.Read32())
}

// State returns a save state of the machine.
func (g *GameBoy) State() []byte {
	s := types.NewState()
	g.Save(s)
	return s.Bytes()
}

// LoadState restores a save state returned by State. The state is
// decoded into scratch components first, so a GameBoy is left untouched
// when b is rejected.
func (g *GameBoy) LoadState(b []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loading state: %v", r)
		}
	}()

	s := types.StateFromBytes(b)
	scratch := &GameBoy{
		Bus:        mmu.NewBus(),
		Interrupts: interrupts.NewService(),
		Scheduler:  scheduler.NewScheduler(),
	}
	scratch.PPU = ppu.New(scratch.Bus, scratch.Interrupts, nil)
	scratch.Load(s)
	if scratch.scriptPos > len(g.script) {
		return fmt.Errorf("loading state: script position %d beyond %d writes", scratch.scriptPos, len(g.script))
	}

	s.Rewind()
	g.Load(s)
	return nil
}
