// Package display turns the shades produced by the PPU into images.
package display

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/palette"
	"golang.org/x/image/draw"
)

// Framebuffer is a ppu.PixelSink. Pixels are collected into a back
// buffer, and every completed frame is rendered with the palette and
// becomes the front image.
type Framebuffer struct {
	back    [ppu.ScreenHeight][ppu.ScreenWidth]uint8
	shades  [ppu.ScreenHeight][ppu.ScreenWidth]uint8
	front   *image.RGBA
	palette palette.Palette
	frames  uint64

	onFrame []func(*image.RGBA)

	mu sync.RWMutex
}

var _ ppu.PixelSink = (*Framebuffer)(nil)

// NewFramebuffer returns a Framebuffer rendering with pal. Until the
// first frame completes the image is blank (shade 0).
func NewFramebuffer(pal palette.Palette) *Framebuffer {
	f := &Framebuffer{
		front:   image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight)),
		palette: pal,
	}
	f.render()
	return f
}

// SetPixel implements ppu.PixelSink.
func (f *Framebuffer) SetPixel(x, y int, shade uint8) {
	f.back[y][x] = shade
}

// FrameComplete implements ppu.PixelSink.
func (f *Framebuffer) FrameComplete() {
	f.mu.Lock()
	f.shades = f.back
	f.render()
	f.frames++
	img := f.front
	callbacks := f.onFrame
	f.mu.Unlock()

	for _, fn := range callbacks {
		fn(img)
	}
}

func (f *Framebuffer) render() {
	img := image.NewRGBA(f.front.Rect)
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			img.SetRGBA(x, y, f.palette.RGBA(f.shades[y][x]))
		}
	}
	f.front = img
}

// OnFrame registers fn to be called with every completed frame. The
// image must not be modified.
func (f *Framebuffer) OnFrame(fn func(*image.RGBA)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onFrame = append(f.onFrame, fn)
}

// SetPalette changes the palette, re-rendering the last frame.
func (f *Framebuffer) SetPalette(pal palette.Palette) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.palette = pal
	f.render()
}

// Frames returns the number of completed frames.
func (f *Framebuffer) Frames() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.frames
}

// Image returns the last completed frame.
func (f *Framebuffer) Image() *image.RGBA {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.front
}

// Shades returns the shades of the last completed frame.
func (f *Framebuffer) Shades() [ppu.ScreenHeight][ppu.ScreenWidth]uint8 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.shades
}

// RGBA returns a copy of the pixels of the last completed frame, 4
// bytes per pixel.
func (f *Framebuffer) RGBA() []byte {
	return append([]byte(nil), f.Image().Pix...)
}

// Hash returns the xxhash of the last completed frame, for comparing
// frames without keeping them around.
func (f *Framebuffer) Hash() uint64 {
	return xxhash.Sum64(f.Image().Pix)
}

// Scaled returns the last completed frame scaled by factor, with
// nearest neighbour sampling so every pixel stays sharp.
func (f *Framebuffer) Scaled(factor int) *image.RGBA {
	return Scale(f.Image(), factor)
}

// WritePNG encodes the last completed frame, scaled by factor, as PNG.
func (f *Framebuffer) WritePNG(w io.Writer, factor int) error {
	if err := png.Encode(w, f.Scaled(factor)); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	return nil
}

// Scale scales img by factor using nearest neighbour sampling. A factor
// below 2 returns img as is.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
