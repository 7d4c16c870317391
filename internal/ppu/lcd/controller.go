package lcd

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
	"github.com/thelolagemann/gomeboy-ppu/pkg/bits"
)

// Controller is the decoded LCD control register. It is responsible for
// controlling various aspects of the LCD, such as enabling the background
// and window display.
//
// Its value is stored in the LCD Control Register (types.LCDC) as follows:
//
//	Bit 7 - LCD Enable                     (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display              (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit. While reset the display is
	// suspended.
	Enabled bool
	// WindowTileMapAddress is the start address of the window tile map,
	// either 0x9800 or 0x9C00.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// UnsignedTileData is the BG & Window Tile Data Select bit. When set,
	// tile numbers index 0x8000 unsigned. Otherwise they are signed and
	// relative to 0x9000.
	UnsignedTileData bool
	// BackgroundTileMapAddress is the start address of the background
	// tile map, either 0x9800 or 0x9C00.
	BackgroundTileMapAddress uint16
	// SpriteSize is the sprite height in pixels, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display bit. When reset the
	// background and window are drawn with colour 0.
	BackgroundEnabled bool

	raw uint8
}

// NewController returns a new LCD controller holding value.
func NewController(value uint8) *Controller {
	c := &Controller{}
	c.Write(value)
	return c
}

// Write decodes the value into the controller.
func (c *Controller) Write(value uint8) {
	c.raw = value
	c.Enabled = bits.Test(value, 7)
	c.WindowTileMapAddress = 0x9800
	if bits.Test(value, 6) {
		c.WindowTileMapAddress = 0x9C00
	}
	c.WindowEnabled = bits.Test(value, 5)
	c.UnsignedTileData = bits.Test(value, 4)
	c.BackgroundTileMapAddress = 0x9800
	if bits.Test(value, 3) {
		c.BackgroundTileMapAddress = 0x9C00
	}
	c.SpriteSize = 8 + bits.Val(value, 2)*8
	c.SpriteEnabled = bits.Test(value, 1)
	c.BackgroundEnabled = bits.Test(value, 0)
}

// Read returns the raw register value.
func (c *Controller) Read() uint8 {
	return c.raw
}

// TileDataAddress returns the address of the first byte of the given
// tile number, honouring the addressing mode.
func (c *Controller) TileDataAddress(tile uint8) uint16 {
	if c.UnsignedTileData {
		return 0x8000 + uint16(tile)*16
	}
	return uint16(0x9000 + int(int8(tile))*16)
}

// String implements fmt.Stringer.
func (c *Controller) String() string {
	var s [8]byte
	for i, name := range "EWwUBSOb" {
		if c.raw&(types.Bit7>>i) != 0 {
			s[i] = byte(name)
		} else {
			s[i] = '-'
		}
	}
	return string(s[:])
}
