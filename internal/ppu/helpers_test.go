package ppu

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/interrupts"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

var testPalette = palette.Palette{
	Name:   "test",
	Colors: [4][3]uint8{{0xFF, 0xFF, 0xFF}, {0xAA, 0xAA, 0xAA}, {0x55, 0x55, 0x55}, {0x00, 0x00, 0x00}},
}

// testMemory is a flat 64KiB address space.
type testMemory [0x10000]uint8

func (m *testMemory) Get(address uint16) uint8 {
	return m[address]
}

// setTile fills every row of an unsigned tile number with the same
// bit planes.
func (m *testMemory) setTile(tile int, low, high uint8) {
	base := types.VRAMStart + tile*16
	for row := 0; row < 8; row++ {
		m[base+row*2] = low
		m[base+row*2+1] = high
	}
}

// setSprite writes OAM entry index.
func (m *testMemory) setSprite(index int, y, x, tile, flags uint8) {
	base := types.OAMStart + index*4
	m[base], m[base+1], m[base+2], m[base+3] = y, x, tile, flags
}

type testSink struct {
	pixels [ScreenHeight][ScreenWidth]uint8
	set    int
	frames int
}

func (s *testSink) SetPixel(x, y int, shade uint8) {
	s.pixels[y][x] = shade
	s.set++
}

func (s *testSink) FrameComplete() {
	s.frames++
}

type testPPU struct {
	*PPU
	mem  *testMemory
	sink *testSink
	irq  *interrupts.Service
}

func newTestPPU(opts ...Opt) *testPPU {
	t := &testPPU{mem: &testMemory{}, sink: &testSink{}, irq: interrupts.NewService()}
	t.PPU = New(t.mem, t.irq, t.sink, opts...)
	t.Write(types.BGP, 0xE4)
	t.Write(types.OBP0, 0xE4)
	t.Write(types.OBP1, 0x1B)
	return t
}

func (t *testPPU) run(cycles int) {
	for i := 0; i < cycles; i++ {
		t.TCycle()
	}
}

func (t *testPPU) statRequests() uint64 {
	return t.irq.Requests(interrupts.LCDFlag)
}

// row returns the shades of the first n pixels of line y.
func (t *testPPU) row(y, n int) []uint8 {
	return append([]uint8(nil), t.sink.pixels[y][:n]...)
}
