package palette

import (
	"image/color"
	"testing"
)

func TestShade(t *testing.T) {
	// 0xE4 is the identity palette 3-2-1-0
	for i := uint8(0); i < 4; i++ {
		if s := Shade(0xE4, i); s != i {
			t.Errorf("expected shade %d, got %d", i, s)
		}
	}
	// 0x1B is the inverted palette 0-1-2-3
	if s := Shade(0x1B, 0); s != 3 {
		t.Errorf("expected shade 3, got %d", s)
	}
	if s := Shade(0x1B, 3); s != 0 {
		t.Errorf("expected shade 0, got %d", s)
	}
}

func TestByName(t *testing.T) {
	p, err := ByName("Green")
	if err != nil {
		t.Fatal(err)
	}
	if p.RGBA(0) != (color.RGBA{R: 0x9B, G: 0xBC, B: 0x0F, A: 0xFF}) {
		t.Errorf("unexpected lightest green %v", p.RGBA(0))
	}
	if _, err := ByName("purple"); err == nil {
		t.Errorf("expected error for unknown palette")
	}
}
