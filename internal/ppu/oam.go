package ppu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

const (
	// oamEntries is the number of sprites held in OAM.
	oamEntries = 40
	// maxSpritesPerLine is the capacity of the sprite buffer.
	maxSpritesPerLine = 10
)

// Sprite is an entry of the OAM table. OAM (Object Attribute Memory)
// is located at 0xFE00-0xFE9F and holds 40 entries of 4 bytes each.
type Sprite struct {
	Y     uint8 // vertical position plus 16
	X     uint8 // horizontal position plus 8
	Tile  uint8 // tile number, always addressed from 0x8000
	Flags uint8 // attributes, see below
	Index uint8 // position in OAM
}

// BehindBackground is flags bit 7. When set the sprite is drawn behind
// background colours 1-3.
func (s Sprite) BehindBackground() bool {
	return s.Flags&types.Bit7 != 0
}

// FlipY is flags bit 6.
func (s Sprite) FlipY() bool {
	return s.Flags&types.Bit6 != 0
}

// FlipX is flags bit 5.
func (s Sprite) FlipX() bool {
	return s.Flags&types.Bit5 != 0
}

// Palette is flags bit 4, selecting OBP0 (0) or OBP1 (1).
func (s Sprite) Palette() uint8 {
	return s.Flags & types.Bit4 >> 4
}

// SpriteBuffer holds the sprites found on the current scanline, in OAM
// order. It never holds more than 10 entries.
type SpriteBuffer struct {
	sprites [maxSpritesPerLine]Sprite
	n       int
}

// Len returns the number of buffered sprites.
func (b *SpriteBuffer) Len() int {
	return b.n
}

// Add appends s, returning false when the buffer is full.
func (b *SpriteBuffer) Add(s Sprite) bool {
	if b.n >= maxSpritesPerLine {
		return false
	}
	b.sprites[b.n] = s
	b.n++
	return true
}

// Get returns the sprite with the lowest X among those starting at or
// before the given screen column. Equal X values go to OAM order.
func (b *SpriteBuffer) Get(column int) (Sprite, bool) {
	if i := b.find(column); i >= 0 {
		return b.sprites[i], true
	}
	return Sprite{}, false
}

// Pop removes and returns the sprite Get would return.
func (b *SpriteBuffer) Pop(column int) (Sprite, bool) {
	i := b.find(column)
	if i < 0 {
		return Sprite{}, false
	}
	s := b.sprites[i]
	copy(b.sprites[i:b.n], b.sprites[i+1:b.n])
	b.n--
	return s, true
}

// Clear empties the buffer.
func (b *SpriteBuffer) Clear() {
	b.n = 0
}

// Sprites returns a copy of the buffered sprites.
func (b *SpriteBuffer) Sprites() []Sprite {
	return append([]Sprite(nil), b.sprites[:b.n]...)
}

func (b *SpriteBuffer) find(column int) int {
	found := -1
	for i := 0; i < b.n; i++ {
		if int(b.sprites[i].X)-8 > column {
			continue
		}
		if found < 0 || b.sprites[i].X < b.sprites[found].X {
			found = i
		}
	}
	return found
}

var _ types.Stater = (*SpriteBuffer)(nil)

// Save implements the types.Stater interface.
func (b *SpriteBuffer) Save(s *types.State) {
	s.Write8(uint8(b.n))
	for _, sp := range b.sprites[:b.n] {
		s.WriteData([]byte{sp.Y, sp.X, sp.Tile, sp.Flags, sp.Index})
	}
}

// Load implements the types.Stater interface.
func (b *SpriteBuffer) Load(s *types.State) {
	b.n = int(s.Read8())
	if b.n > maxSpritesPerLine {
		panic(fmt.Sprintf("sprite buffer: state holds %d sprites", b.n))
	}
	raw := make([]byte, 5)
	for i := 0; i < b.n; i++ {
		s.ReadData(raw)
		b.sprites[i] = Sprite{Y: raw[0], X: raw[1], Tile: raw[2], Flags: raw[3], Index: raw[4]}
	}
}

// OAMScanState is a step of the OAM scan. Each OAM entry takes one
// dot in each state.
type OAMScanState uint8

const (
	ReadCoordinate OAMScanState = iota // read Y and X of the entry
	ReadData                           // read tile and flags, buffer the entry if visible
)

func (s OAMScanState) String() string {
	if s == ReadCoordinate {
		return "ReadCoordinate"
	}
	return "ReadData"
}

// OAMScanner searches OAM for the sprites overlapping a scanline,
// taking 2 dots per entry and 80 dots in total.
type OAMScanner struct {
	mem    Memory
	regs   *Registers
	buffer *SpriteBuffer

	state  OAMScanState
	index  int
	ly     uint8
	height uint8
	y, x   uint8
}

// NewOAMScanner returns a scanner filling buffer from the OAM in mem.
func NewOAMScanner(mem Memory, regs *Registers, buffer *SpriteBuffer) *OAMScanner {
	return &OAMScanner{mem: mem, regs: regs, buffer: buffer, index: oamEntries}
}

// Setup prepares a scan of the scanline ly and clears the buffer. The
// sprite height is latched from LCDC.
func (o *OAMScanner) Setup(ly uint8) {
	o.state = ReadCoordinate
	o.index = 0
	o.ly = ly
	o.height = o.regs.LCDC.SpriteSize
	o.buffer.Clear()
}

// Done reports whether all 40 entries have been scanned.
func (o *OAMScanner) Done() bool {
	return o.index >= oamEntries
}

// Step advances the scan by one dot.
func (o *OAMScanner) Step() {
	if o.Done() {
		return
	}

	switch o.state {
	case ReadCoordinate:
		o.y = o.oam(o.index*4 + 0)
		o.x = o.oam(o.index*4 + 1)
		o.state = ReadData
	case ReadData:
		if o.visible() {
			o.buffer.Add(Sprite{
				Y:     o.y,
				X:     o.x,
				Tile:  o.oam(o.index*4 + 2),
				Flags: o.oam(o.index*4 + 3),
				Index: uint8(o.index),
			})
		}
		if debug && o.buffer.Len() > maxSpritesPerLine {
			panic(fmt.Sprintf("oam scan: sprite buffer holds %d entries", o.buffer.Len()))
		}
		o.index++
		o.state = ReadCoordinate
	}
}

func (o *OAMScanner) visible() bool {
	line := int(o.ly) + 16
	return line >= int(o.y) &&
		line < int(o.y)+int(o.height) &&
		o.x > 0 &&
		o.buffer.Len() < maxSpritesPerLine
}

// oam reads byte i of the OAM table. Reads beyond the table return 0.
func (o *OAMScanner) oam(i int) uint8 {
	if i < 0 || i >= types.OAMSize {
		return 0
	}
	return o.mem.Get(types.OAMStart + uint16(i))
}

var _ types.Stater = (*OAMScanner)(nil)

// Save implements the types.Stater interface.
func (o *OAMScanner) Save(s *types.State) {
	s.Write8(uint8(o.state))
	s.Write8(uint8(o.index))
	s.Write8(o.ly)
	s.Write8(o.height)
	s.Write8(o.y)
	s.Write8(o.x)
}

// Load implements the types.Stater interface.
func (o *OAMScanner) Load(s *types.State) {
	o.state = OAMScanState(s.Read8())
	o.index = int(s.Read8())
	o.ly = s.Read8()
	o.height = s.Read8()
	o.y = s.Read8()
	o.x = s.Read8()
}
