package background

import (
	"image/color"
	"testing"

	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/lcd"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/palette"
)

type memory map[uint16]uint8

func (m memory) Get(address uint16) uint8 {
	return m[address]
}

func TestMap_Render(t *testing.T) {
	mem := memory{0x9C21: 1}
	for i := uint16(0); i < 16; i++ {
		mem[0x8010+i] = 0xFF
	}
	pal := palette.Palettes[palette.Greyscale]

	m := Map{LCDC: lcd.NewController(0xD9), Window: true, BGP: 0xE4, Palette: pal}
	img := m.Render(mem)

	if b := img.Bounds(); b.Dx() != Size || b.Dy() != Size {
		t.Fatalf("expected %dx%d, got %v", Size, Size, b)
	}
	if c := img.RGBAAt(8, 8); c != pal.RGBA(3) {
		t.Errorf("expected tile 1 at (8, 8), got %v", c)
	}
	if c := img.RGBAAt(7, 7); c != pal.RGBA(0) {
		t.Errorf("expected tile 0 at (7, 7), got %v", c)
	}
}

func TestMap_Outline(t *testing.T) {
	pal := palette.Palettes[palette.Greyscale]
	m := Map{LCDC: lcd.NewController(0x91), SCX: 200, SCY: 10, BGP: 0xE4, Palette: pal, Outline: true}
	img := m.Render(memory{})

	red := color.RGBA{R: 0xFF, A: 0xFF}
	if c := img.RGBAAt(200, 10); c != red {
		t.Errorf("expected outline at the viewport origin, got %v", c)
	}
	// the right edge wraps around to x=(200+159)%256
	if c := img.RGBAAt(103, 50); c != red {
		t.Errorf("expected wrapped outline, got %v", c)
	}
	if c := img.RGBAAt(150, 50); c == red {
		t.Errorf("expected no outline inside the viewport")
	}
}
