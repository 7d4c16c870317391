package ppu

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
	"github.com/thelolagemann/gomeboy-ppu/pkg/bits"
)

// ObjectFetcherState is a step of the sprite fetcher. A fetch takes 6
// dots, after which the fetcher idles in ObjectComplete.
type ObjectFetcherState uint8

const (
	ObjectFetchTileNo           ObjectFetcherState = iota // pop the sprite and resolve its tile
	ObjectFetchTileDataLow                                // read the low bit plane
	ObjectFetchTileDataLowWait                            // second dot of the low read
	ObjectFetchTileDataHigh                               // read the high bit plane
	ObjectFetchTileDataHighWait                           // second dot of the high read
	ObjectPushToFIFO                                      // merge the strip into the sprite FIFO
	ObjectComplete                                        // idle
)

var objectFetcherStateNames = [...]string{
	"ObjectFetchTileNo", "ObjectFetchTileDataLow", "ObjectFetchTileDataLowWait",
	"ObjectFetchTileDataHigh", "ObjectFetchTileDataHighWait", "ObjectPushToFIFO", "ObjectComplete",
}

func (s ObjectFetcherState) String() string {
	if int(s) < len(objectFetcherStateNames) {
		return objectFetcherStateNames[s]
	}
	return "ObjectFetcherState(?)"
}

// SpriteFetcher fetches the 8 pixel strip of a single sprite on demand
// and merges it into the sprite FIFO.
type SpriteFetcher struct {
	mem    Memory
	regs   *Registers
	buffer *SpriteBuffer
	fifo   *FIFO

	state     ObjectFetcherState
	column    int
	sprite    Sprite
	address   uint16
	low, high uint8
}

// NewSpriteFetcher returns an idle sprite fetcher.
func NewSpriteFetcher(mem Memory, regs *Registers, buffer *SpriteBuffer, fifo *FIFO) *SpriteFetcher {
	return &SpriteFetcher{mem: mem, regs: regs, buffer: buffer, fifo: fifo, state: ObjectComplete}
}

// Start begins fetching the sprite due at the given screen column.
func (f *SpriteFetcher) Start(column int) {
	f.column = column
	f.state = ObjectFetchTileNo
}

// Complete reports whether the fetcher is idle, so background fetching
// may resume.
func (f *SpriteFetcher) Complete() bool {
	return f.state == ObjectComplete
}

// State returns the current step of the fetcher.
func (f *SpriteFetcher) State() ObjectFetcherState {
	return f.state
}

// Step advances the fetcher by one dot.
func (f *SpriteFetcher) Step() {
	switch f.state {
	case ObjectFetchTileNo:
		// nothing due leaves an all zero sprite, which lies entirely
		// left of the screen and pushes no pixels
		f.sprite, _ = f.buffer.Pop(f.column)
		f.address = f.tileAddress()
	case ObjectFetchTileDataLow:
		f.low = f.mem.Get(f.address)
	case ObjectFetchTileDataHigh:
		f.high = f.mem.Get(f.address + 1)
	case ObjectPushToFIFO:
		f.fifo.Merge(f.strip())
	case ObjectComplete:
		return
	}
	f.state++
}

// tileAddress returns the address of the low byte of the sprite row
// on the current scanline.
func (f *SpriteFetcher) tileAddress() uint16 {
	height := f.regs.LCDC.SpriteSize
	tile := f.sprite.Tile
	if height == 16 {
		tile &^= 1
	}

	row := (f.regs.LY + 16 - f.sprite.Y) & (height - 1)
	if f.sprite.FlipY() {
		row = height - 1 - row
	}

	return types.VRAMStart + uint16(tile)*16 + uint16(row)*2
}

// strip returns the sprite pixels from the current column onwards.
// Pixels of a sprite starting left of the column are dropped.
func (f *SpriteFetcher) strip() []Pixel {
	row := bits.Row(f.low, f.high)
	pixels := make([]Pixel, 8)
	for x := range pixels {
		c := row[x]
		if f.sprite.FlipX() {
			c = row[7-x]
		}
		pixels[x] = Pixel{
			Color:    c,
			Palette:  f.sprite.Palette(),
			Priority: f.sprite.BehindBackground(),
		}
	}

	skip := f.column - (int(f.sprite.X) - 8)
	switch {
	case skip <= 0:
		return pixels
	case skip >= 8:
		return nil
	}
	return pixels[skip:]
}

var _ types.Stater = (*SpriteFetcher)(nil)

// Save implements the types.Stater interface.
func (f *SpriteFetcher) Save(s *types.State) {
	s.Write8(uint8(f.state))
	s.Write16(uint16(f.column))
	s.WriteData([]byte{f.sprite.Y, f.sprite.X, f.sprite.Tile, f.sprite.Flags, f.sprite.Index})
	s.Write16(f.address)
	s.Write8(f.low)
	s.Write8(f.high)
}

// Load implements the types.Stater interface.
func (f *SpriteFetcher) Load(s *types.State) {
	f.state = ObjectFetcherState(s.Read8())
	f.column = int(s.Read16())
	raw := make([]byte, 5)
	s.ReadData(raw)
	f.sprite = Sprite{Y: raw[0], X: raw[1], Tile: raw[2], Flags: raw[3], Index: raw[4]}
	f.address = s.Read16()
	f.low = s.Read8()
	f.high = s.Read8()
}
