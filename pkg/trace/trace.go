// Package trace records how long the Drawing phase of every line takes,
// and plots it.
package trace

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/thelolagemann/gomeboy-ppu/internal/ppu"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Frame holds the Drawing length in dots of every visible line.
type Frame [ppu.ScreenHeight]int

// Recorder collects Drawing lengths. Observe is meant to be passed to
// gameboy.WithLineObserver.
type Recorder struct {
	current Frame
	seen    int
	frames  []Frame
}

// Observe records the Drawing length of line ly. Line 0 starts a new
// frame.
func (r *Recorder) Observe(ly uint8, drawing int) {
	if int(ly) >= ppu.ScreenHeight {
		return
	}
	if ly == 0 && r.seen > 0 {
		r.Flush()
	}
	r.current[ly] = drawing
	r.seen++
}

// Flush completes the frame being recorded.
func (r *Recorder) Flush() {
	if r.seen == 0 {
		return
	}
	r.frames = append(r.frames, r.current)
	r.current = Frame{}
	r.seen = 0
}

// Frames returns the completed frames.
func (r *Recorder) Frames() []Frame {
	return append([]Frame(nil), r.frames...)
}

// Stats returns the shortest, longest and mean Drawing length over all
// completed frames.
func (r *Recorder) Stats() (min, max int, mean float64) {
	if len(r.frames) == 0 {
		return 0, 0, 0
	}
	min = r.frames[0][0]
	total := 0
	for _, f := range r.frames {
		for _, d := range f {
			if d < min {
				min = d
			}
			if d > max {
				max = d
			}
			total += d
		}
	}
	return min, max, float64(total) / float64(len(r.frames)*ppu.ScreenHeight)
}

// Plot draws the Drawing length per line of the last frame, and the
// mean over all frames, as a width x height PNG.
func (r *Recorder) Plot(w io.Writer, width, height int) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("trace: no frames recorded")
	}

	p := plot.New()
	p.Title.Text = "Drawing length"
	p.X.Label.Text = "LY"
	p.Y.Label.Text = "dots"

	last := make(plotter.XYs, ppu.ScreenHeight)
	mean := make(plotter.XYs, ppu.ScreenHeight)
	for ly := range last {
		last[ly].X = float64(ly)
		last[ly].Y = float64(r.frames[len(r.frames)-1][ly])

		mean[ly].X = float64(ly)
		for _, f := range r.frames {
			mean[ly].Y += float64(f[ly])
		}
		mean[ly].Y /= float64(len(r.frames))
	}

	lastLine, err := plotter.NewLine(last)
	if err != nil {
		return err
	}
	meanLine, err := plotter.NewLine(mean)
	if err != nil {
		return err
	}
	meanLine.Color = color.RGBA{R: 0xE0, G: 0x40, B: 0x40, A: 0xFF}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), lastLine, meanLine)
	p.Legend.Add("last frame", lastLine)
	p.Legend.Add("mean", meanLine)

	c := vgimg.NewWith(vgimg.UseImage(image.NewRGBA(image.Rect(0, 0, width, height))))
	p.Draw(draw.New(c))

	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("trace: encoding plot: %w", err)
	}
	return nil
}
