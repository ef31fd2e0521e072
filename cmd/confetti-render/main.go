// Command confetti-render plays a recipe or a cue script headlessly on a
// simulated clock and writes the frames as PNG files.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"confetti/internal/app"
	"confetti/internal/engine"
	"confetti/internal/render"
	"confetti/internal/script"

	"github.com/benbjohnson/clock"
)

var (
	background  = color.RGBA{R: 10, G: 10, B: 16, A: 255}
	densityTint = color.RGBA{R: 120, G: 180, B: 255, A: 255}
)

type options struct {
	cfg       *app.Config
	out       string
	frames    int
	every     int
	field     bool
	untilIdle bool
}

type summary struct {
	frames  int
	written int
	stats   engine.Stats
}

func main() {
	opts := options{cfg: app.NewConfig()}
	opts.cfg.Bind(flag.CommandLine)
	flag.StringVar(&opts.out, "out", "frames", "output directory")
	flag.IntVar(&opts.frames, "frames", 240, "maximum frames to simulate")
	flag.IntVar(&opts.every, "every", 1, "write every n-th frame")
	flag.BoolVar(&opts.field, "field", false, "overlay the fluid density on each written frame")
	flag.BoolVar(&opts.untilIdle, "until-idle", true, "stop once every cue has fired and the session is idle")
	flag.Parse()

	sum, err := run(opts)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	log.Printf("[render] %d frames simulated, %d written to %s (spawned %d, peak %d, dropped %d)",
		sum.frames, sum.written, opts.out, sum.stats.Spawned, sum.stats.Peak, sum.stats.Dropped)
}

func run(opts options) (summary, error) {
	cfg := opts.cfg
	if opts.every < 1 {
		opts.every = 1
	}

	sc := &script.Script{Cues: []script.Cue{{Recipe: cfg.Recipe}}}
	if cfg.Script != "" {
		loaded, err := script.Load(cfg.Script)
		if err != nil {
			return summary{}, err
		}
		sc = loaded
	}
	size := sc.Viewport(cfg.Viewport())
	seed := cfg.Seed
	if sc.Seed != 0 {
		seed = sc.Seed
	}
	if cfg.Emotion != "" {
		for i := range sc.Cues {
			if sc.Cues[i].Emotion == "" {
				sc.Cues[i].Emotion = cfg.Emotion
			}
		}
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return summary{}, fmt.Errorf("create output dir: %w", err)
	}

	mock := clock.NewMock()
	eng := engine.New(engine.Options{
		Viewport: size,
		Params:   cfg.Params(),
		Clock:    mock,
		Seed:     seed,
	})
	defer eng.Destroy()

	raster := render.NewRaster(size.W, size.H, background)
	eng.Attach(raster)

	tps := cfg.TPS
	if tps <= 0 {
		tps = 60
	}
	step := time.Second / time.Duration(tps)
	cursor := sc.Cursor()

	var sum summary
	for frame := 0; frame < opts.frames; frame++ {
		for _, cue := range cursor.Advance(time.Duration(frame) * step) {
			eng.Celebrate(cue.Celebration())
		}
		mock.Add(step)
		eng.Frame()
		sum.frames++

		if frame%opts.every == 0 {
			if opts.field {
				raster.DrawField(eng.Density(), 4, densityTint)
			}
			path := filepath.Join(opts.out, fmt.Sprintf("frame_%04d.png", frame))
			if err := raster.WritePNG(path); err != nil {
				return sum, err
			}
			sum.written++
		}

		if opts.untilIdle && cursor.Done() && !eng.Animating() && eng.Pending() == 0 {
			break
		}
	}
	sum.stats = eng.Stats()
	return sum, nil
}
