package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/config"
	"github.com/milk9111/spritekit/render"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	mode := flag.String("mode", "", "render mode, cpu or gpu (overrides the config)")
	assetDir := flag.String("assets", "", "asset directory; the bundled demo assets are used when empty")
	watch := flag.Bool("watch", false, "reload assets when files under -assets change")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *assetDir != "" {
		cfg.AssetDir = *assetDir
	}
	cfg.Watch = cfg.Watch || *watch
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	level, _ := cfg.Level()
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	v, err := NewViewer(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer v.Close()

	if err := render.Run(v.engine, cfg.Title, v.Frame); err != nil {
		log.Fatal(err)
	}
}
