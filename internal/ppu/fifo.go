package ppu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-ppu/internal/types"
)

// fifoSize is the capacity of a pixel FIFO.
const fifoSize = 8

// FIFO is a bounded queue of pixels, holding at most 8 entries. The
// background and sprite fetchers each own one.
type FIFO struct {
	buf  [fifoSize]Pixel
	head int
	size int
}

// Len returns the number of queued pixels.
func (f *FIFO) Len() int {
	return f.size
}

// Write refills the FIFO from an 8 pixel batch. When n pixels are
// already queued, the first n pixels of the batch are discarded, so
// queued pixels are never overwritten and the FIFO ends up full.
func (f *FIFO) Write(batch [8]Pixel) {
	for i := f.size; i < fifoSize; i++ {
		f.push(batch[i])
	}
}

// Merge overlays a sprite strip onto the queue, starting at the front.
// Queued transparent pixels are replaced by opaque pixels of the strip,
// opaque pixels already queued are kept, and pixels beyond the queue
// are appended.
func (f *FIFO) Merge(strip []Pixel) {
	for i, p := range strip {
		if i >= fifoSize {
			break
		}
		if i < f.size {
			slot := &f.buf[(f.head+i)%fifoSize]
			if slot.Transparent() && !p.Transparent() {
				*slot = p
			}
			continue
		}
		f.push(p)
	}
}

// Read pops the front pixel. The second return value is false when
// the FIFO is empty.
func (f *FIFO) Read() (Pixel, bool) {
	if f.size == 0 {
		return Pixel{}, false
	}
	p := f.buf[f.head]
	f.head = (f.head + 1) % fifoSize
	f.size--
	return p, true
}

// Clear empties the FIFO.
func (f *FIFO) Clear() {
	f.head = 0
	f.size = 0
}

// At returns the pixel i positions from the front.
func (f *FIFO) At(i int) Pixel {
	if i >= f.size {
		panic(fmt.Sprintf("fifo: index %d out of range for length %d", i, f.size))
	}
	return f.buf[(f.head+i)%fifoSize]
}

func (f *FIFO) push(p Pixel) {
	if debug && f.size >= fifoSize {
		panic(fmt.Sprintf("fifo: push onto full fifo (%d entries)", f.size))
	}
	if f.size >= fifoSize {
		return
	}
	f.buf[(f.head+f.size)%fifoSize] = p
	f.size++
}

var _ types.Stater = (*FIFO)(nil)

// Save implements the types.Stater interface. Only the queued
// pixels are saved, front first.
func (f *FIFO) Save(s *types.State) {
	s.Write8(uint8(f.size))
	for i := 0; i < f.size; i++ {
		savePixel(s, f.At(i))
	}
}

// Load implements the types.Stater interface.
func (f *FIFO) Load(s *types.State) {
	f.Clear()
	n := int(s.Read8())
	for i := 0; i < n; i++ {
		f.push(loadPixel(s))
	}
}

func savePixel(s *types.State, p Pixel) {
	s.Write8(p.Color)
	s.Write8(p.Palette)
	s.WriteBool(p.Priority)
}

func loadPixel(s *types.State) Pixel {
	return Pixel{Color: s.Read8(), Palette: s.Read8(), Priority: s.ReadBool()}
}
