// Package background renders the full background and window tile
// maps, for inspecting what the PPU fetches from.
package background

import (
	"image"
	"image/color"

	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/lcd"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy-ppu/pkg/bits"
)

// Size is the width and height of a tile map in pixels.
const Size = 256

// Memory is the VRAM the maps are read from.
type Memory interface {
	Get(address uint16) uint8
}

// Map describes a tile map to render. The map is divided into 32x32
// tiles of 8x8 pixels. As the display only has 160x144 pixels, the
// background is scrolled to show different parts of the map.
type Map struct {
	LCDC    *lcd.Controller
	Window  bool  // render the window tile map instead of the background
	SCX     uint8 // viewport origin, outlined when Outline is set
	SCY     uint8
	BGP     uint8
	Palette palette.Palette
	Outline bool
}

// Render renders the whole 256x256 tile map.
func (m Map) Render(mem Memory) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))

	base := m.LCDC.BackgroundTileMapAddress
	if m.Window {
		base = m.LCDC.WindowTileMapAddress
	}

	for ty := 0; ty < 32; ty++ {
		for tx := 0; tx < 32; tx++ {
			tile := mem.Get(base + uint16(ty*32+tx))
			addr := m.LCDC.TileDataAddress(tile)
			for row := 0; row < 8; row++ {
				low := mem.Get(addr + uint16(row*2))
				high := mem.Get(addr + uint16(row*2+1))
				for x, c := range bits.Row(low, high) {
					img.SetRGBA(tx*8+x, ty*8+row, m.Palette.RGBA(palette.Shade(m.BGP, c)))
				}
			}
		}
	}

	if m.Outline && !m.Window {
		m.outline(img)
	}
	return img
}

// outline draws the 160x144 viewport, wrapping around the map edges.
func (m Map) outline(img *image.RGBA) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	for x := 0; x < 160; x++ {
		px := (int(m.SCX) + x) % Size
		img.SetRGBA(px, int(m.SCY), red)
		img.SetRGBA(px, (int(m.SCY)+143)%Size, red)
	}
	for y := 0; y < 144; y++ {
		py := (int(m.SCY) + y) % Size
		img.SetRGBA(int(m.SCX), py, red)
		img.SetRGBA((int(m.SCX)+159)%Size, py, red)
	}
}
