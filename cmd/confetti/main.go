//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"confetti/internal/app"
	"confetti/internal/engine"
	"confetti/internal/prefs"
	"confetti/internal/script"

	"github.com/benbjohnson/clock"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	size := cfg.Viewport()
	seed := cfg.Seed
	var sc *script.Script
	if cfg.Script != "" {
		var err error
		sc, err = script.Load(cfg.Script)
		if err != nil {
			log.Fatalf("loading script: %v", err)
		}
		size = sc.Viewport(size)
		if sc.Seed != 0 {
			seed = sc.Seed
		}
	}

	store := prefs.NewStore(nil)
	if cfg.Prefs != "" {
		var err error
		if store, err = prefs.Open(cfg.Prefs); err != nil {
			log.Printf("[prefs] %v (preferences will not be saved)", err)
		}
	}

	clk := clock.New()
	eng := engine.New(engine.Options{
		Viewport: size,
		Params:   cfg.Params(),
		Clock:    clk,
		Seed:     seed,
	})
	defer eng.Destroy()

	game := app.New(eng, cfg, store)
	if sc != nil {
		stop := sc.Play(eng, clk)
		defer stop()
	}

	ebiten.SetWindowTitle("confetti")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W+cfg.HUD, size.H)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
