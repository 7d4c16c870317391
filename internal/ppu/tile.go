package ppu

import (
	"image"

	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
	"github.com/thelolagemann/gomeboy-ppu/pkg/bits"
)

const (
	// tileCount is the number of tiles in the tile data area
	// 0x8000-0x97FF.
	tileCount = 384
	// tilesPerRow is the width of the tile data view in tiles.
	tilesPerRow = 16
)

// Tile represents a tile. Each tile has a size of 8x8 pixels and a color
// depth of 4 colors/gray shades. Tiles can be displayed as sprites or as
// background/window tiles.
type Tile [8][8]uint8

// NewTile decodes the 16 bytes of a tile record.
func NewTile(b [16]uint8) Tile {
	var t Tile
	for y := 0; y < 8; y++ {
		t[y] = bits.Row(b[y*2], b[y*2+1])
	}
	return t
}

// Draw draws the tile to img with its top left corner at (x, y),
// mapping colour indices through the palette register.
func (t Tile) Draw(img *image.RGBA, x, y int, pal palette.Palette, register uint8) {
	for ty := 0; ty < 8; ty++ {
		for tx := 0; tx < 8; tx++ {
			img.SetRGBA(x+tx, y+ty, pal.RGBA(palette.Shade(register, t[ty][tx])))
		}
	}
}

// TileData renders the 384 tiles of the tile data area into a 128x192
// image, 16 tiles per row, using BGP.
func (p *PPU) TileData(pal palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tilesPerRow*8, tileCount/tilesPerRow*8))
	var raw [16]uint8
	for i := 0; i < tileCount; i++ {
		base := types.VRAMStart + uint16(i)*16
		for j := range raw {
			raw[j] = p.mem.Get(base + uint16(j))
		}
		NewTile(raw).Draw(img, i%tilesPerRow*8, i/tilesPerRow*8, pal, p.regs.BGP)
	}
	return img
}
