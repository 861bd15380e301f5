package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/library"
	"github.com/ayusman/mudra/internal/media"
	"github.com/ayusman/mudra/internal/report"
	"github.com/ayusman/mudra/internal/store"
)

const configFile = "mudra.yaml"

func main() {
	fmt.Println("Mudra - Hand Movement Tracking")

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lib := library.New(cfg.BaseDir)
	if err := lib.EnsureDirs(); err != nil {
		log.Fatalf("Failed to create workspace: %v", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	tools := media.FindTools()

	a := app.New(app.Config{
		Library:  lib,
		Store:    st,
		Tools:    tools,
		Detector: detectorConfig(cfg),
		Heatmap: report.HeatmapConfig{
			GridWidth:  cfg.Heatmap.GridWidth,
			GridHeight: cfg.Heatmap.GridHeight,
		},
	})

	c := &cli{
		cfg:  cfg,
		st:   st,
		lib:  lib,
		app:  a,
		dl:   &media.Downloader{VideoDir: lib.VideosDir(), Tools: tools},
		play: &media.Player{Tools: tools, ScreenWidth: cfg.Playback.ScreenWidth},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.run(ctx); err != nil {
		log.Fatalf("Fatal: %v", err)
	}
}

func detectorConfig(cfg config.Config) detector.Config {
	return detector.Config{
		MaxHands:        cfg.Detector.MaxHands,
		MinConfidence:   cfg.Detector.MinConfidence,
		MinTrackingConf: cfg.Detector.MinTrackingConf,
	}
}
