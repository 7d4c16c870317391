package ppu

import (
	"testing"

	"github.com/go-test/deep"
)

func newTestFetcher() (*BackgroundFetcher, *testMemory, *Registers, *FIFO) {
	mem := &testMemory{}
	regs := newRegisters()
	fifo := &FIFO{}
	return NewBackgroundFetcher(mem, regs, fifo), mem, regs, fifo
}

// fetchTile steps the fetcher through one full tile fetch.
func fetchTile(f *BackgroundFetcher) {
	for i := 0; i < 7; i++ {
		f.Step()
	}
}

func TestBackgroundFetcher_States(t *testing.T) {
	f, _, _, fifo := newTestFetcher()

	expected := []FetcherState{
		FetchTileNoWait, FetchTileDataLow, FetchTileDataLowWait,
		FetchTileDataHigh, FetchTileDataHighWait, PushToFIFO, FetchTileNo,
	}
	for i, s := range expected {
		f.Step()
		if f.State() != s {
			t.Fatalf("step %d: expected %s, got %s", i, s, f.State())
		}
	}
	if fifo.Len() != 8 {
		t.Errorf("expected 8 pixels pushed, got %d", fifo.Len())
	}
}

func TestBackgroundFetcher_PushStalls(t *testing.T) {
	f, _, _, fifo := newTestFetcher()
	fetchTile(f)
	fifo.Read()

	for i := 0; i < 6; i++ {
		f.Step()
	}
	f.Step()
	if f.State() != PushToFIFO {
		t.Fatalf("expected fetcher to stall in PushToFIFO, got %s", f.State())
	}
	if fifo.Len() != 7 {
		t.Errorf("expected the queued pixels to be untouched, got %d", fifo.Len())
	}

	fifo.Clear()
	f.Step()
	if f.State() != FetchTileNo || fifo.Len() != 8 {
		t.Errorf("expected push once the fifo drained, got %s with %d pixels", f.State(), fifo.Len())
	}
}

func TestBackgroundFetcher_TileMapAddress(t *testing.T) {
	f, _, regs, _ := newTestFetcher()
	regs.SCX, regs.SCY, regs.LY = 0xF8, 20, 10
	f.column = 3

	// ((3 + 31) & 31) + 32 * (30 / 8)
	if a := f.tileMapAddress(); a != 0x9800+2+96 {
		t.Errorf("expected 0x%04X, got 0x%04X", 0x9800+2+96, a)
	}

	regs.LCDC.Write(0x99)
	if a := f.tileMapAddress(); a != 0x9C00+2+96 {
		t.Errorf("expected 0x%04X, got 0x%04X", 0x9C00+2+96, a)
	}
}

func TestBackgroundFetcher_TileDataAddress(t *testing.T) {
	f, _, regs, _ := newTestFetcher()
	regs.LY, regs.SCY = 3, 2

	f.tileNo = 0x80
	if a := f.tileDataAddress(); a != 0x8800+10 {
		t.Errorf("expected unsigned addressing 0x%04X, got 0x%04X", 0x8800+10, a)
	}

	regs.LCDC.Write(0x81)
	if a := f.tileDataAddress(); a != 0x8800+10 {
		t.Errorf("expected signed tile -128 at 0x%04X, got 0x%04X", 0x8800+10, a)
	}
	f.tileNo = 0x01
	if a := f.tileDataAddress(); a != 0x9010+10 {
		t.Errorf("expected signed tile 1 at 0x%04X, got 0x%04X", 0x9010+10, a)
	}
}

func TestBackgroundFetcher_Pixels(t *testing.T) {
	f, mem, _, fifo := newTestFetcher()
	mem.setTile(5, 0x55, 0x33)
	mem[0x9800] = 5

	fetchTile(f)

	if diff := deep.Equal(drain(fifo), []uint8{0, 1, 2, 3, 0, 1, 2, 3}); diff != nil {
		t.Error(diff)
	}
}

func TestBackgroundFetcher_SwitchToWindow(t *testing.T) {
	f, mem, regs, fifo := newTestFetcher()
	regs.LCDC.Write(0xF1)
	mem.setTile(1, 0xFF, 0xFF)
	mem[0x9C00+32] = 1

	fetchTile(f)
	fetchTile(f)
	f.Step()

	f.SwitchToWindow(9)
	if !f.Window() || f.column != 0 || f.State() != FetchTileNo || fifo.Len() != 0 {
		t.Fatalf("expected a fresh window fetch, got column=%d state=%s fifo=%d", f.column, f.State(), fifo.Len())
	}

	f.Step()
	f.SwitchToWindow(0)
	if f.State() != FetchTileNoWait || f.windowLine != 9 {
		t.Errorf("expected SwitchToWindow to be idempotent, got state=%s line=%d", f.State(), f.windowLine)
	}

	for i := 0; i < 6; i++ {
		f.Step()
	}
	if diff := deep.Equal(drain(fifo), []uint8{3, 3, 3, 3, 3, 3, 3, 3}); diff != nil {
		t.Error(diff)
	}

	f.Reset()
	if f.Window() {
		t.Errorf("expected Reset to return to the background")
	}
}

func newTestSpriteFetcher(sprites ...Sprite) (*SpriteFetcher, *testMemory, *Registers, *FIFO) {
	mem := &testMemory{}
	regs := newRegisters()
	buffer := &SpriteBuffer{}
	for _, s := range sprites {
		buffer.Add(s)
	}
	fifo := &FIFO{}
	return NewSpriteFetcher(mem, regs, buffer, fifo), mem, regs, fifo
}

func runSpriteFetch(f *SpriteFetcher, column int) int {
	f.Start(column)
	n := 0
	for !f.Complete() {
		f.Step()
		n++
	}
	return n
}

func TestSpriteFetcher_SixDots(t *testing.T) {
	f, mem, _, fifo := newTestSpriteFetcher(Sprite{Y: 16, X: 8, Tile: 1})
	mem.setTile(1, 0xC3, 0x00)

	if !f.Complete() {
		t.Fatalf("expected a new sprite fetcher to be idle")
	}
	if n := runSpriteFetch(f, 0); n != 6 {
		t.Errorf("expected a sprite fetch to take 6 dots, got %d", n)
	}
	if diff := deep.Equal(drain(fifo), []uint8{1, 1, 0, 0, 0, 0, 1, 1}); diff != nil {
		t.Error(diff)
	}
}

func TestSpriteFetcher_FlipY(t *testing.T) {
	f, mem, regs, fifo := newTestSpriteFetcher(Sprite{Y: 16, X: 8, Tile: 1, Flags: 0x40})
	regs.LY = 1
	// row 6 of tile 1
	mem[0x8010+12] = 0xFF

	runSpriteFetch(f, 0)

	if diff := deep.Equal(drain(fifo), []uint8{1, 1, 1, 1, 1, 1, 1, 1}); diff != nil {
		t.Error(diff)
	}
}

func TestSpriteFetcher_TallSprite(t *testing.T) {
	f, _, regs, _ := newTestSpriteFetcher(Sprite{Y: 16, X: 8, Tile: 3})
	regs.LCDC.Write(0x95)
	regs.LY = 9

	f.Start(0)
	f.Step()

	// tile 3 becomes 2 and row 9 lies in its second half
	if f.address != 0x8020+18 {
		t.Errorf("expected 0x%04X, got 0x%04X", 0x8020+18, f.address)
	}
}

func TestSpriteFetcher_PartiallyLeft(t *testing.T) {
	f, mem, _, fifo := newTestSpriteFetcher(Sprite{Y: 16, X: 3, Tile: 1, Flags: 0x30})
	mem.setTile(1, 0x01, 0x01)

	runSpriteFetch(f, 0)

	// flipped the only opaque pixel moves to the left edge, which is
	// off screen for X=3
	if diff := deep.Equal(drain(fifo), []uint8{0, 0, 0}); diff != nil {
		t.Error(diff)
	}
}

func TestSpriteFetcher_Attributes(t *testing.T) {
	f, mem, _, fifo := newTestSpriteFetcher(Sprite{Y: 16, X: 8, Tile: 1, Flags: 0x90})
	mem.setTile(1, 0xFF, 0xFF)

	runSpriteFetch(f, 0)

	p, _ := fifo.Read()
	if diff := deep.Equal(p, Pixel{Color: 3, Palette: 1, Priority: true}); diff != nil {
		t.Error(diff)
	}
}
