package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/library"
	"github.com/ayusman/mudra/internal/report"
	"github.com/ayusman/mudra/internal/stats"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/track"
	"github.com/ayusman/mudra/internal/video"
)

// Result summarizes one completed pipeline run.
type Result struct {
	Records []track.Record
	Stats   *stats.Aggregate
	Meta    video.Meta

	TrackedPath    string
	CSVPath        string
	ReportPath     string
	TrajectoryPath string

	// ArtifactErr joins the errors of any emitters that failed. The
	// pipeline always attempts every artifact, so a non-nil value means
	// some outputs are missing while the rest were still written.
	ArtifactErr error
}

// Process runs the full pipeline for a video filename in the library:
// track every frame, write the annotated video with the original audio,
// and emit the CSV, heatmap, report and trajectory artifacts.
func (a *App) Process(ctx context.Context, filename string) (*Result, error) {
	src, err := video.Open(a.lib.VideoPath(filename))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return a.processSource(ctx, filename, src)
}

func (a *App) processSource(ctx context.Context, filename string, src video.Source) (*Result, error) {
	base := library.BaseName(filename)
	if n := a.lib.CleanArtifacts(base); n > 0 {
		log.Infof("removed %d stale artifact(s) for %s", n, base)
	}

	meta := src.Meta()
	log.Infof("processing %s: %dx%d, %.2f fps, %d frames",
		filename, meta.Width, meta.Height, meta.FPS, meta.FrameCount)

	det, err := a.newDetector(a.detConfig)
	if err != nil {
		return nil, fmt.Errorf("start detector: %w", err)
	}
	defer det.Close()

	// The annotated frames land in a temp file first; audio is muxed in
	// afterwards to produce the final tracked video.
	rawPath := filepath.Join(a.lib.TrackedDir(), "raw_"+filename)
	writer, err := video.NewWriter(rawPath, meta)
	if err != nil {
		return nil, fmt.Errorf("open annotated writer: %w", err)
	}

	records, err := track.New(det).Run(ctx, src, writer)
	writer.Close()
	if err != nil {
		os.Remove(rawPath)
		return nil, err
	}
	log.Infof("tracking done: %d detections", len(records))

	res := &Result{
		Records:        records,
		Stats:          stats.Compute(records, meta.FPS),
		Meta:           meta,
		TrackedPath:    a.lib.TrackedPath(filename),
		CSVPath:        a.lib.CSVPath(base),
		ReportPath:     a.lib.ReportPath(base),
		TrajectoryPath: a.lib.TrajectoryPath(base),
	}

	res.ArtifactErr = a.emitArtifacts(filename, res)
	a.finalizeTracked(ctx, rawPath, a.lib.VideoPath(filename), res.TrackedPath)
	a.recordRun(filename, res)

	return res, nil
}

// emitArtifacts writes the CSV, heatmap, report and trajectory files.
// A failure in one artifact does not block the others; the joined
// failures are returned so the caller sees which outputs are missing.
func (a *App) emitArtifacts(filename string, res *Result) error {
	var errs []error

	if err := report.WriteCSV(res.CSVPath, res.Records); err != nil {
		log.Errorf("csv: %v", err)
		errs = append(errs, fmt.Errorf("csv: %w", err))
	} else {
		log.Infof("wrote %s", res.CSVPath)
	}

	if err := report.WriteHeatmap(a.out, res.Records, filename, a.heatmap); err != nil {
		log.Errorf("heatmap: %v", err)
		errs = append(errs, fmt.Errorf("heatmap: %w", err))
	}

	info := report.Info{
		Video:       filename,
		FPS:         res.Meta.FPS,
		DurationSec: res.Meta.Duration().Seconds(),
	}
	if err := report.SaveReport(res.ReportPath, info, res.Stats); err != nil {
		log.Errorf("report: %v", err)
		errs = append(errs, fmt.Errorf("report: %w", err))
	} else {
		log.Infof("wrote %s", res.ReportPath)
	}

	if err := report.SaveTrajectory(res.TrajectoryPath, "Hand Trajectories - "+filename, res.Records); err != nil {
		log.Errorf("trajectory: %v", err)
		errs = append(errs, fmt.Errorf("trajectory: %w", err))
	} else {
		log.Infof("wrote %s", res.TrajectoryPath)
	}

	return errors.Join(errs...)
}

// finalizeTracked muxes the original audio into the annotated video. If
// ffmpeg is unavailable or fails, the silent annotated file is kept.
func (a *App) finalizeTracked(ctx context.Context, rawPath, originalPath, outPath string) {
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		log.Warnf("could not replace %s: %v", outPath, err)
	}

	if err := a.tools.MuxAudio(ctx, rawPath, originalPath, outPath); err != nil {
		log.Warnf("audio mux failed, keeping silent video: %v", err)
		if err := os.Rename(rawPath, outPath); err != nil {
			log.Errorf("could not keep annotated video: %v", err)
		}
		return
	}
	os.Remove(rawPath)
}

// recordRun saves the run summary to the database when a store is wired.
func (a *App) recordRun(filename string, res *Result) {
	if a.store == nil {
		return
	}

	run := &store.Run{
		Video:           filename,
		FPS:             res.Meta.FPS,
		FrameCount:      res.Meta.FrameCount,
		DurationSec:     res.Meta.Duration().Seconds(),
		TotalDetections: res.Stats.Combined.TotalDetections,
		LeftDetections:  res.Stats.Left.TotalDetections,
		RightDetections: res.Stats.Right.TotalDetections,
		Coverage:        res.Stats.Combined.CoverageRatio,
	}
	if err := a.store.Runs().Create(run); err != nil {
		log.Errorf("save run: %v", err)
		return
	}
	log.Infof("saved run %s", run.ID)
}
