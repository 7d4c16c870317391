package display

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/palette"
)

func fill(f *Framebuffer, shade uint8) {
	for y := 0; y < 144; y++ {
		for x := 0; x < 160; x++ {
			f.SetPixel(x, y, shade)
		}
	}
}

func TestFramebuffer_FrameComplete(t *testing.T) {
	pal := palette.Palettes[palette.Greyscale]
	f := NewFramebuffer(pal)

	var seen []*image.RGBA
	f.OnFrame(func(img *image.RGBA) {
		seen = append(seen, img)
	})

	f.SetPixel(3, 5, 3)
	if c := f.Image().RGBAAt(3, 5); c != pal.RGBA(0) {
		t.Errorf("expected pixels to stay in the back buffer until the frame completes, got %v", c)
	}

	f.FrameComplete()
	if c := f.Image().RGBAAt(3, 5); c != pal.RGBA(3) {
		t.Errorf("expected shade 3, got %v", c)
	}
	if f.Shades()[5][3] != 3 {
		t.Errorf("expected shade 3 in the shades, got %d", f.Shades()[5][3])
	}
	if len(seen) != 1 || seen[0] != f.Image() || f.Frames() != 1 {
		t.Errorf("expected a single frame callback")
	}
}

func TestFramebuffer_Hash(t *testing.T) {
	f := NewFramebuffer(palette.Palettes[palette.Greyscale])
	blank := f.Hash()

	fill(f, 2)
	f.FrameComplete()
	filled := f.Hash()
	if filled == blank {
		t.Errorf("expected different hashes for different frames")
	}

	f.FrameComplete()
	if f.Hash() != filled {
		t.Errorf("expected identical frames to hash the same")
	}

	f.SetPalette(palette.Palettes[palette.Green])
	if f.Hash() == filled {
		t.Errorf("expected the palette to change the hash")
	}
}

func TestFramebuffer_Scaled(t *testing.T) {
	pal := palette.Palettes[palette.Greyscale]
	f := NewFramebuffer(pal)
	f.SetPixel(1, 0, 3)
	f.FrameComplete()

	img := f.Scaled(3)
	if b := img.Bounds(); b.Dx() != 480 || b.Dy() != 432 {
		t.Fatalf("expected 480x432, got %v", b)
	}
	for _, p := range []image.Point{{3, 0}, {5, 2}} {
		if c := img.RGBAAt(p.X, p.Y); c != pal.RGBA(3) {
			t.Errorf("expected shade 3 at %v, got %v", p, c)
		}
	}
	if c := img.RGBAAt(6, 0); c != pal.RGBA(0) {
		t.Errorf("expected shade 0 at (6, 0), got %v", c)
	}

	if f.Scaled(1) != f.Image() {
		t.Errorf("expected a factor of 1 to return the frame")
	}
}

func TestFramebuffer_WritePNG(t *testing.T) {
	pal := palette.Palettes[palette.Greyscale]
	f := NewFramebuffer(pal)
	fill(f, 1)
	f.FrameComplete()

	var b bytes.Buffer
	if err := f.WritePNG(&b, 2); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&b)
	if err != nil {
		t.Fatal(err)
	}
	if s := img.Bounds().Size(); s.X != 320 || s.Y != 288 {
		t.Errorf("expected 320x288, got %v", s)
	}
	r, g, bl, _ := img.At(100, 100).RGBA()
	want := pal.RGBA(1)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(bl>>8) != want.B {
		t.Errorf("expected %v, got %d %d %d", want, r>>8, g>>8, bl>>8)
	}
}

func TestFramebuffer_RGBA(t *testing.T) {
	f := NewFramebuffer(palette.Palettes[palette.Greyscale])
	b := f.RGBA()
	if len(b) != 160*144*4 {
		t.Fatalf("expected %d bytes, got %d", 160*144*4, len(b))
	}
	b[0] = 0x12
	if f.Image().Pix[0] == 0x12 {
		t.Errorf("expected RGBA to return a copy")
	}
}
