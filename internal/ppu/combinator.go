package ppu

import "github.com/thelolagemann/gomeboy-ppu/internal/ppu/palette"

// Combine resolves the background pixel and the optional sprite pixel
// of a column into a shade.
//
// The sprite pixel wins when it is present, not transparent, and either
// its BG priority flag is clear or the background pixel has colour 0.
// The winning colour index is mapped through BGP, or OBP0/OBP1 for
// sprites.
func Combine(bg, obj Pixel, hasObj bool, regs *Registers) uint8 {
	if hasObj && !obj.Transparent() && (!obj.Priority || bg.Color == 0) {
		if obj.Palette == 1 {
			return palette.Shade(regs.OBP1, obj.Color)
		}
		return palette.Shade(regs.OBP0, obj.Color)
	}
	return palette.Shade(regs.BGP, bg.Color)
}
