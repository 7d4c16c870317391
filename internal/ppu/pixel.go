package ppu

// Pixel is a single entry of a pixel FIFO.
type Pixel struct {
	// Color is the 2-bit colour index, before it is mapped through a
	// palette register.
	Color uint8
	// Palette selects OBP1 instead of OBP0 for sprite pixels.
	Palette uint8
	// Priority is the OBJ-to-BG priority flag of sprite pixels. When set
	// the sprite is drawn behind background colours 1-3.
	Priority bool
}

// Transparent reports whether the pixel has colour index 0, which is
// never drawn for sprites.
func (p Pixel) Transparent() bool {
	return p.Color == 0
}
