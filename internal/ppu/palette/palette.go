package palette

import (
	"fmt"
	"image/color"
	"strings"
)

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Palette maps the 4 shades produced by the PPU to RGB colours.
// Shade 0 is the lightest and shade 3 the darkest.
type Palette struct {
	Name   string
	Colors [4][3]uint8
}

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	{
		Name: "greyscale",
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xCC, 0xCC, 0xCC},
			{0x77, 0x77, 0x77},
			{0x00, 0x00, 0x00},
		},
	},
	{
		Name: "green",
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
	{
		Name: "red",
		Colors: [4][3]uint8{
			{0xFF, 0x00, 0x00},
			{0xCC, 0x00, 0x00},
			{0x77, 0x00, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
	{
		Name: "yellow",
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0x00},
			{0xCC, 0xCC, 0x00},
			{0x77, 0x77, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
}

// ByName returns the palette with the given name, ignoring case.
func ByName(name string) (Palette, error) {
	for _, p := range Palettes {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("palette: unknown palette %q", name)
}

// Shade maps a 2-bit colour index through a packed DMG palette
// register (BGP, OBP0 or OBP1) and returns the resulting shade.
func Shade(register uint8, index uint8) uint8 {
	return (register >> ((index & 3) * 2)) & 3
}

// RGBA returns the colour of the given shade.
func (p Palette) RGBA(shade uint8) color.RGBA {
	c := p.Colors[shade&3]
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}
