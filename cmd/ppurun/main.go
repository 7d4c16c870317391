// Command ppurun drives the PPU from a VRAM/OAM snapshot and a script of
// timed register writes, and writes out the resulting frames.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/thelolagemann/gomeboy-ppu/internal/gameboy"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/background"
	"github.com/thelolagemann/gomeboy-ppu/internal/ppu/palette"
	"github.com/thelolagemann/gomeboy-ppu/pkg/display"
	"github.com/thelolagemann/gomeboy-ppu/pkg/display/web"
	"github.com/thelolagemann/gomeboy-ppu/pkg/emu"
	"github.com/thelolagemann/gomeboy-ppu/pkg/log"
	"github.com/thelolagemann/gomeboy-ppu/pkg/trace"
	"github.com/thelolagemann/gomeboy-ppu/pkg/utils"
)

// FrameTime is the time a frame takes on hardware.
const FrameTime = time.Second * gameboy.CyclesPerFrame / gameboy.ClockSpeed

func main() {
	snapshotFile := flag.String("snapshot", "", "The VRAM/OAM/register snapshot to load")
	scriptFile := flag.String("script", "", "The script of timed register writes to apply")
	stateFile := flag.String("state", "", "The state file to resume from")
	saveFolder := flag.String("save", "", "The folder to write a state file to when done")
	frames := flag.Int("frames", 1, "The number of frames to run, 0 runs until interrupted when serving")
	out := flag.String("out", "", "The PNG file to write the last frame to")
	scale := flag.Int("scale", 1, "The scale factor of written images")
	paletteName := flag.String("palette", "greyscale", "The palette to render with. Can be greyscale, green, red or yellow")
	tiles := flag.String("tiles", "", "The PNG file to write the tile data to")
	bg := flag.String("background", "", "The PNG file to write the background map to")
	plot := flag.String("plot", "", "The PNG file to plot the drawing length per line to")
	serve := flag.String("serve", "", "The address to stream frames from over websockets, e.g. :8090")
	dump := flag.Bool("dump", false, "Print the PPU registers and sprite buffer when done")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	var logger = log.New()
	if *debug {
		logger = log.NewLogrus(os.Stderr, true)
	}
	fatal := func(format string, args ...interface{}) {
		logger.Errorf(format, args...)
		os.Exit(1)
	}

	pal, err := palette.ByName(*paletteName)
	if err != nil {
		fatal("%v", err)
	}
	fb := display.NewFramebuffer(pal)

	opts := []gameboy.Opt{gameboy.WithLogger(logger), gameboy.WithSink(fb)}

	if *scriptFile != "" {
		b, err := utils.LoadFile(*scriptFile)
		if err != nil {
			fatal("%v", err)
		}
		script, err := gameboy.ParseScript(bytes.NewReader(b))
		if err != nil {
			fatal("%s: %v", *scriptFile, err)
		}
		opts = append(opts, gameboy.WithScript(script))
	}

	if *snapshotFile != "" {
		if *stateFile != "" {
			fatal("-snapshot and -state are mutually exclusive")
		}
		raw, err := utils.LoadFile(*snapshotFile)
		if err != nil {
			fatal("%v", err)
		}
		opts = append(opts, gameboy.WithSnapshot(raw))
	}

	if *stateFile != "" {
		state, err := (&emu.Save{Path: *stateFile}).Bytes()
		if err != nil {
			fatal("%v", err)
		}
		opts = append(opts, gameboy.WithState(state))
	}

	rec := &trace.Recorder{}
	if *plot != "" {
		opts = append(opts, gameboy.WithLineObserver(rec.Observe))
	}

	gb, err := gameboy.NewGameBoy(opts...)
	if err != nil {
		fatal("%v", err)
	}

	start := time.Now()
	if *serve != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		hub := web.NewHub(web.WithCompression(7), web.WithFramePatching(1), web.WithFrameSkipping(), web.WithLogger(logger))
		go hub.Run(ctx)
		go func() {
			if err := hub.ListenAndServe(ctx, *serve); err != nil {
				logger.Errorf("%v", err)
				stop()
			}
		}()
		fb.OnFrame(func(img *image.RGBA) {
			hub.Push(img.Pix)
		})

		ticker := time.NewTicker(FrameTime)
	run:
		for n := 0; *frames == 0 || n < *frames; n++ {
			select {
			case <-ctx.Done():
				break run
			case <-ticker.C:
				gb.Frame()
			}
		}
		ticker.Stop()
	} else {
		gb.RunFrames(*frames)
	}
	logger.Infof("ran %d frames (%d cycles) in %s", fb.Frames(), gb.Cycle(), time.Since(start).Round(time.Millisecond))

	if *out != "" {
		if err := writeFile(*out, func(f *os.File) error { return fb.WritePNG(f, *scale) }); err != nil {
			fatal("%v", err)
		}
	}
	if *tiles != "" {
		img := display.Scale(gb.PPU.TileData(pal), *scale)
		if err := writeFile(*tiles, func(f *os.File) error { return png.Encode(f, img) }); err != nil {
			fatal("%v", err)
		}
	}
	if *bg != "" {
		regs := gb.PPU.Registers()
		m := background.Map{LCDC: regs.LCDC, SCX: regs.SCX, SCY: regs.SCY, BGP: regs.BGP, Palette: pal, Outline: true}
		img := display.Scale(m.Render(gb.Bus), *scale)
		if err := writeFile(*bg, func(f *os.File) error { return png.Encode(f, img) }); err != nil {
			fatal("%v", err)
		}
	}
	if *plot != "" {
		rec.Flush()
		min, max, mean := rec.Stats()
		logger.Infof("drawing length: min %d max %d mean %.1f dots", min, max, mean)
		if err := writeFile(*plot, func(f *os.File) error { return rec.Plot(f, 800, 480) }); err != nil {
			fatal("%v", err)
		}
	}
	if *saveFolder != "" {
		s, err := emu.NewSave(*saveFolder, "ppurun", gb.State())
		if err != nil {
			fatal("%v", err)
		}
		logger.Infof("state saved to %s", s.Path)
	}
	if *dump {
		fmt.Println(gb.Dump())
	}
}

func writeFile(name string, fn func(f *os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}
