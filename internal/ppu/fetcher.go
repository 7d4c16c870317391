package ppu

import (
	"github.com/thelolagemann/gomeboy-ppu/internal/types"
	"github.com/thelolagemann/gomeboy-ppu/pkg/bits"
)

// FetcherState is a step of the background/window fetcher. Each state
// takes a single dot.
type FetcherState uint8

const (
	FetchTileNo           FetcherState = iota // read the tile number from the tile map
	FetchTileNoWait                           // second dot of the tile number read
	FetchTileDataLow                          // read the low bit plane of the tile row
	FetchTileDataLowWait                      // second dot of the low read
	FetchTileDataHigh                         // read the high bit plane of the tile row
	FetchTileDataHighWait                     // second dot of the high read
	PushToFIFO                                // push 8 pixels once the FIFO has drained
)

var fetcherStateNames = [...]string{
	"FetchTileNo", "FetchTileNoWait", "FetchTileDataLow", "FetchTileDataLowWait",
	"FetchTileDataHigh", "FetchTileDataHighWait", "PushToFIFO",
}

func (s FetcherState) String() string {
	if int(s) < len(fetcherStateNames) {
		return fetcherStateNames[s]
	}
	return "FetcherState(?)"
}

// next returns the state following s. PushToFIFO only advances once
// the push happened, which is decided by the fetcher itself.
func (s FetcherState) next() FetcherState {
	if s == PushToFIFO {
		return FetchTileNo
	}
	return s + 1
}

// BackgroundFetcher produces background and window pixels, one tile
// row at a time, into the background FIFO.
type BackgroundFetcher struct {
	mem  Memory
	regs *Registers
	fifo *FIFO

	state      FetcherState
	column     uint8 // tile column, relative to the layer being fetched
	window     bool
	windowLine uint8

	tileNo    uint8
	low, high uint8
}

// NewBackgroundFetcher returns a fetcher reading from mem and
// writing into fifo.
func NewBackgroundFetcher(mem Memory, regs *Registers, fifo *FIFO) *BackgroundFetcher {
	return &BackgroundFetcher{mem: mem, regs: regs, fifo: fifo}
}

// State returns the current step of the fetcher.
func (f *BackgroundFetcher) State() FetcherState {
	return f.state
}

// Window reports whether the fetcher is fetching window tiles.
func (f *BackgroundFetcher) Window() bool {
	return f.window
}

// Step advances the fetcher by one dot. While in PushToFIFO the fetcher
// stalls until the FIFO is empty.
func (f *BackgroundFetcher) Step() {
	switch f.state {
	case FetchTileNo:
		f.tileNo = f.mem.Get(f.tileMapAddress())
	case FetchTileDataLow:
		f.low = f.mem.Get(f.tileDataAddress())
	case FetchTileDataHigh:
		f.high = f.mem.Get(f.tileDataAddress() + 1)
	case PushToFIFO:
		if f.fifo.Len() > 0 {
			return
		}
		var batch [8]Pixel
		for x, c := range bits.Row(f.low, f.high) {
			batch[x].Color = c
		}
		f.fifo.Write(batch)
		f.column++
	}
	f.state = f.state.next()
}

// SwitchToWindow restarts fetching from the first column of the window
// tile map, using line as the window row. It does nothing when the
// window is already being fetched.
func (f *BackgroundFetcher) SwitchToWindow(line uint8) {
	if f.window {
		return
	}
	f.window = true
	f.windowLine = line
	f.fifo.Clear()
	f.state = FetchTileNo
	f.column = 0
}

// Reset clears the FIFO and restarts background fetching from the
// first column.
func (f *BackgroundFetcher) Reset() {
	f.fifo.Clear()
	f.state = FetchTileNo
	f.column = 0
	f.window = false
}

// tileMapAddress returns the address of the tile number for the
// current column.
func (f *BackgroundFetcher) tileMapAddress() uint16 {
	if f.window {
		return f.regs.LCDC.WindowTileMapAddress +
			uint16(f.column&0x1f) + 32*uint16(f.windowLine/8)
	}
	y := f.regs.LY + f.regs.SCY
	return f.regs.LCDC.BackgroundTileMapAddress +
		uint16((f.column+f.regs.SCX/8)&0x1f) + 32*uint16(y/8)
}

// tileDataAddress returns the address of the low byte of the current
// tile row.
func (f *BackgroundFetcher) tileDataAddress() uint16 {
	row := (f.regs.LY + f.regs.SCY) & 7
	if f.window {
		row = f.windowLine & 7
	}
	return f.regs.LCDC.TileDataAddress(f.tileNo) + uint16(row)*2
}

var _ types.Stater = (*BackgroundFetcher)(nil)

// Save implements the types.Stater interface.
func (f *BackgroundFetcher) Save(s *types.State) {
	s.Write8(uint8(f.state))
	s.Write8(f.column)
	s.WriteBool(f.window)
	s.Write8(f.windowLine)
	s.Write8(f.tileNo)
	s.Write8(f.low)
	s.Write8(f.high)
}

// Load implements the types.Stater interface.
func (f *BackgroundFetcher) Load(s *types.State) {
	f.state = FetcherState(s.Read8())
	f.column = s.Read8()
	f.window = s.ReadBool()
	f.windowLine = s.Read8()
	f.tileNo = s.Read8()
	f.low = s.Read8()
	f.high = s.Read8()
}
