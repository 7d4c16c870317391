package trace

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/thelolagemann/gomeboy-ppu/internal/gameboy"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu"
)

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	for frame := 0; frame < 2; frame++ {
		for ly := 0; ly < ppu.ScreenHeight; ly++ {
			r.Observe(uint8(ly), 166+frame*6)
		}
	}
	r.Observe(150, 1000)

	if n := len(r.Frames()); n != 1 {
		t.Fatalf("expected 1 completed frame, got %d", n)
	}
	r.Flush()
	frames := r.Frames()
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1][143] != 172 {
		t.Errorf("expected 172, got %d", frames[1][143])
	}

	min, max, mean := r.Stats()
	if min != 166 || max != 172 || mean != 169 {
		t.Errorf("expected 166 172 169, got %d %d %v", min, max, mean)
	}
}

func TestRecorder_GameBoy(t *testing.T) {
	r := &Recorder{}
	g, err := gameboy.NewGameBoy(gameboy.WithLineObserver(r.Observe))
	if err != nil {
		t.Fatal(err)
	}
	g.RunFrames(2)
	r.Flush()

	if n := len(r.Frames()); n != 2 {
		t.Fatalf("expected 2 frames, got %d", n)
	}
	if min, max, _ := r.Stats(); min != 166 || max != 166 {
		t.Errorf("expected every line to draw in 166 dots, got %d to %d", min, max)
	}
}

func TestRecorder_Plot(t *testing.T) {
	r := &Recorder{}
	var b bytes.Buffer
	if err := r.Plot(&b, 320, 240); err == nil {
		t.Errorf("expected an error without frames")
	}

	for ly := 0; ly < ppu.ScreenHeight; ly++ {
		r.Observe(uint8(ly), 166+ly%3*6)
	}
	r.Flush()

	if err := r.Plot(&b, 320, 240); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&b)
	if err != nil {
		t.Fatal(err)
	}
	if s := img.Bounds().Size(); s.X != 320 || s.Y != 240 {
		t.Errorf("expected 320x240, got %v", s)
	}
}
