// Package app wires the tracking pipeline together: video in, annotated
// video plus statistics artifacts out.
package app

import (
	"io"
	"os"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/library"
	"github.com/ayusman/mudra/internal/media"
	"github.com/ayusman/mudra/internal/report"
	"github.com/ayusman/mudra/internal/store"
)

// Config carries the collaborators the App needs.
type Config struct {
	Library  *library.Library
	Store    *store.Store
	Tools    media.Tools
	Detector detector.Config
	Heatmap  report.HeatmapConfig

	// Out receives the console heatmap. Defaults to stdout.
	Out io.Writer

	// NewDetector builds the landmark detector for a run. Defaults to
	// the MediaPipe subprocess detector.
	NewDetector func(detector.Config) (detector.Detector, error)
}

// App runs the per-video tracking pipeline.
type App struct {
	lib         *library.Library
	store       *store.Store
	tools       media.Tools
	detConfig   detector.Config
	heatmap     report.HeatmapConfig
	out         io.Writer
	newDetector func(detector.Config) (detector.Detector, error)
}

// New creates an App from config, filling unset hooks with defaults.
func New(config Config) *App {
	a := &App{
		lib:         config.Library,
		store:       config.Store,
		tools:       config.Tools,
		detConfig:   config.Detector,
		heatmap:     config.Heatmap,
		out:         config.Out,
		newDetector: config.NewDetector,
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.newDetector == nil {
		a.newDetector = func(c detector.Config) (detector.Detector, error) {
			return detector.NewMediaPipeDetector(c)
		}
	}
	return a
}
