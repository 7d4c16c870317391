// Package mmu provides the memory the PPU fetches from. The Bus is
// unaware of the other components: IO registers are claimed by them
// through ReserveAddress and ReserveLazyReader.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

// SnapshotSize is the size of a memory snapshot: VRAM, OAM and the 12
// display registers 0xFF40-0xFF4B.
const SnapshotSize = types.VRAMSize + types.OAMSize + 12

// Guard decides whether the CPU may currently access VRAM and OAM.
type Guard interface {
	VRAMAccessible() bool
	OAMAccessible() bool
}

// WriteHandler is a function that handles writing to a memory address.
// It should return the new value to be written back to the memory address.
type WriteHandler func(byte) byte

// ReadHandler is a function that provides the value of a memory
// address at the time it is read.
type ReadHandler func() byte

// Bus is the 64kB address space.
//
// Get and Set access memory directly, as the PPU does. Read and Write
// are the CPU side view: VRAM and OAM are locked while the Guard
// denies access, and the IO page 0xFF00-0xFFFF is dispatched to the
// handlers reserved for it.
type Bus struct {
	data [0x10000]byte

	writeHandlers [0x100]WriteHandler
	readHandlers  [0x100]ReadHandler

	guard Guard
}

// NewBus returns a Bus with the OAM DMA register reserved.
func NewBus() *Bus {
	b := &Bus{}
	b.ReserveAddress(types.DMA, b.dma)
	return b
}

// AttachGuard sets the component deciding VRAM and OAM access.
func (b *Bus) AttachGuard(g Guard) {
	b.guard = g
}

// ReserveAddress reserves a memory address in the IO page. Writes to
// the address are passed to handler, and the returned value is stored.
func (b *Bus) ReserveAddress(addr uint16, handler func(byte) byte) {
	i := ioIndex(addr)
	if b.writeHandlers[i] != nil {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	b.writeHandlers[i] = handler
}

// ReserveLazyReader reserves the reads of a memory address in the IO
// page, for registers whose value changes without a write.
func (b *Bus) ReserveLazyReader(addr uint16, reader func() byte) {
	i := ioIndex(addr)
	if b.readHandlers[i] != nil {
		panic(fmt.Sprintf("address %04X already has a reader", addr))
	}
	b.readHandlers[i] = reader
}

func ioIndex(addr uint16) uint16 {
	if addr < 0xFF00 {
		panic(fmt.Sprintf("address %04X is outside the IO page", addr))
	}
	return addr - 0xFF00
}

// Get gets the value at the specified memory address.
func (b *Bus) Get(addr uint16) byte {
	return b.data[addr]
}

// Set sets the value at the specified memory address. This function
// ignores the write handler and just sets the value.
func (b *Bus) Set(addr uint16, value byte) {
	b.data[addr] = value
}

// Read returns the value at addr as seen by the CPU.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case b.locked(addr):
		return 0xFF
	case addr >= 0xFF00:
		if r := b.readHandlers[addr-0xFF00]; r != nil {
			return r()
		}
	}
	return b.data[addr]
}

// Write performs a CPU write to addr. Writes to locked VRAM or OAM are
// dropped.
func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case b.locked(addr):
		return
	case addr >= 0xFF00:
		if h := b.writeHandlers[addr-0xFF00]; h != nil {
			value = h(value)
		}
	}
	b.data[addr] = value
}

func (b *Bus) locked(addr uint16) bool {
	if b.guard == nil {
		return false
	}
	switch {
	case addr >= types.VRAMStart && addr <= types.VRAMEnd:
		return !b.guard.VRAMAccessible()
	case addr >= types.OAMStart && addr <= types.OAMEnd:
		return !b.guard.OAMAccessible()
	}
	return false
}

// dma copies 160 bytes from value<<8 into OAM. The copy is done in a
// single step, without the 640 cycle transfer window.
func (b *Bus) dma(value byte) byte {
	src := uint16(value) << 8
	for i := uint16(0); i < types.OAMSize; i++ {
		b.data[types.OAMStart+i] = b.data[src+i]
	}
	return value
}

// LoadSnapshot loads VRAM, OAM and the display registers from raw. The
// registers are written through their handlers in address order, with
// LY and DMA skipped.
func (b *Bus) LoadSnapshot(raw []byte) error {
	if len(raw) != SnapshotSize {
		return fmt.Errorf("snapshot: expected %d bytes, got %d", SnapshotSize, len(raw))
	}
	copy(b.data[types.VRAMStart:types.VRAMEnd+1], raw[:types.VRAMSize])
	copy(b.data[types.OAMStart:types.OAMEnd+1], raw[types.VRAMSize:types.VRAMSize+types.OAMSize])

	for i, v := range raw[types.VRAMSize+types.OAMSize:] {
		addr := types.LCDC + uint16(i)
		if addr == types.LY || addr == types.DMA {
			continue
		}
		b.Write(addr, v)
	}
	return nil
}

// Snapshot returns VRAM, OAM and the display registers in the layout
// read by LoadSnapshot.
func (b *Bus) Snapshot() []byte {
	raw := make([]byte, 0, SnapshotSize)
	raw = append(raw, b.data[types.VRAMStart:types.VRAMEnd+1]...)
	raw = append(raw, b.data[types.OAMStart:types.OAMEnd+1]...)
	for addr := types.LCDC; addr <= types.WX; addr++ {
		raw = append(raw, b.Read(addr))
	}
	return raw
}

var _ types.Stater = (*Bus)(nil)

// Save implements the types.Stater interface. Only VRAM and OAM are
// saved, the registers belong to the components reserving them.
func (b *Bus) Save(s *types.State) {
	s.WriteData(b.data[types.VRAMStart : types.VRAMEnd+1])
	s.WriteData(b.data[types.OAMStart : types.OAMEnd+1])
}

// Load implements the types.Stater interface.
func (b *Bus) Load(s *types.State) {
	s.ReadData(b.data[types.VRAMStart : types.VRAMEnd+1])
	s.ReadData(b.data[types.OAMStart : types.OAMEnd+1])
}
