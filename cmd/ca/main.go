//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"unbounded-life/internal/app"
	"unbounded-life/internal/config"
	"unbounded-life/internal/core"
	"unbounded-life/internal/logging"
	_ "unbounded-life/pkg/algorithm/hashlife"
	_ "unbounded-life/pkg/algorithm/naive"
)

func main() {
	configPath := flag.String("config", "", "TOML or YAML config file")
	patternFlag := flag.String("pattern", "", "library pattern name or pattern file (overrides config)")
	algorithmFlag := flag.String("algorithm", "", "hashlife or naive (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *patternFlag != "" {
		cfg.Simulation.Pattern = *patternFlag
	}
	if *algorithmFlag != "" {
		cfg.Simulation.Algorithm = *algorithmFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	initial, err := core.InitialState(cfg.Simulation, logger)
	if err != nil {
		log.Fatal(err)
	}
	opts, err := app.OptionsFromConfig(cfg, initial, logger)
	if err != nil {
		log.Fatal(err)
	}
	game, err := app.New(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("unbounded-life")
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
