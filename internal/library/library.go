// Package library manages the on-disk workspace: the video collection
// and the per-video artifact files produced by a tracking run.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Workspace folder names under the base directory.
const (
	videosDir  = "videos"
	trackedDir = "tracked"
	csvDir     = "csv_data"
	reportsDir = "reports"
)

// Library lays out the workspace directories for one base path.
type Library struct {
	base string
}

// New creates a Library rooted at baseDir.
func New(baseDir string) *Library {
	return &Library{base: baseDir}
}

// EnsureDirs creates the workspace folders if they do not exist.
func (l *Library) EnsureDirs() error {
	for _, dir := range []string{l.VideosDir(), l.TrackedDir(), l.CSVDir(), l.ReportsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// VideosDir returns the folder holding downloaded videos.
func (l *Library) VideosDir() string { return filepath.Join(l.base, videosDir) }

// TrackedDir returns the folder holding annotated output videos.
func (l *Library) TrackedDir() string { return filepath.Join(l.base, trackedDir) }

// CSVDir returns the folder holding per-video record files.
func (l *Library) CSVDir() string { return filepath.Join(l.base, csvDir) }

// ReportsDir returns the folder holding report and trajectory files.
func (l *Library) ReportsDir() string { return filepath.Join(l.base, reportsDir) }

// ListVideos returns the mp4 filenames in the video folder, sorted.
func (l *Library) ListVideos() ([]string, error) {
	entries, err := os.ReadDir(l.VideosDir())
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	var videos []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".mp4") {
			videos = append(videos, e.Name())
		}
	}
	sort.Strings(videos)
	return videos, nil
}

// VideoPath returns the full path of a video filename in the library.
func (l *Library) VideoPath(filename string) string {
	return filepath.Join(l.VideosDir(), filename)
}

// DeleteVideo removes a video from the library.
func (l *Library) DeleteVideo(filename string) error {
	return os.Remove(l.VideoPath(filename))
}

// BaseName strips the extension from a video filename, yielding the base
// used to name all derived artifacts.
func BaseName(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}

// CSVPath returns where the record file for a video base name lives.
func (l *Library) CSVPath(base string) string {
	return filepath.Join(l.CSVDir(), base+"_hand_data.csv")
}

// ReportPath returns where the text report for a video base name lives.
func (l *Library) ReportPath(base string) string {
	return filepath.Join(l.ReportsDir(), base+"_tracking_report.txt")
}

// TrajectoryPath returns where the 3D trajectory HTML for a base name lives.
func (l *Library) TrajectoryPath(base string) string {
	return filepath.Join(l.ReportsDir(), base+"_3d_trajectory.html")
}

// TrackedPath returns where the audio-muxed annotated video lives.
func (l *Library) TrackedPath(videoFilename string) string {
	return filepath.Join(l.TrackedDir(), "tracked_"+videoFilename)
}

// CleanArtifacts deletes stale artifact files for a video base name so a
// rerun starts from a clean slate. Returns the number of files removed;
// individual deletion failures are logged, not fatal.
func (l *Library) CleanArtifacts(base string) int {
	removed := 0

	// Any CSV for this base, including older suffix variants.
	if entries, err := os.ReadDir(l.CSVDir()); err == nil {
		for _, e := range entries {
			name := e.Name()
			if strings.HasPrefix(name, base) && strings.HasSuffix(name, "_hand_data.csv") {
				if err := os.Remove(filepath.Join(l.CSVDir(), name)); err != nil {
					log.Warnf("could not delete old csv %s: %v", name, err)
					continue
				}
				removed++
			}
		}
	}

	for _, path := range []string{l.ReportPath(base), l.TrajectoryPath(base)} {
		if err := os.Remove(path); err == nil {
			removed++
		} else if !os.IsNotExist(err) {
			log.Warnf("could not delete old report %s: %v", path, err)
		}
	}

	return removed
}
