package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/library"
	"github.com/ayusman/mudra/internal/media"
	"github.com/ayusman/mudra/internal/store"
)

// cli drives the interactive menu loop on stdin/stdout.
type cli struct {
	cfg  config.Config
	st   *store.Store
	lib  *library.Library
	app  *app.App
	dl   *media.Downloader
	play *media.Player

	scanner *bufio.Scanner
}

// run shows the library and dispatches one command per iteration until
// the user exits or the context is cancelled.
func (c *cli) run(ctx context.Context) error {
	c.scanner = bufio.NewScanner(os.Stdin)

	for {
		if ctx.Err() != nil {
			return nil
		}

		c.printLibrary()
		fmt.Println()
		fmt.Println("Enter a YouTube URL to download, a video number or filename to track,")
		fmt.Println("'delete N' to remove a video, 'clear cache', or 'exit'.")

		line, ok := c.prompt("> ")
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		switch {
		case line == "exit" || line == "quit" || line == "q":
			return nil
		case line == "clear cache":
			c.clearCache()
		case strings.HasPrefix(line, "delete "):
			c.deleteVideo(strings.TrimSpace(strings.TrimPrefix(line, "delete ")))
		case strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://"):
			filename, err := c.resolveURL(ctx, line)
			if err != nil {
				log.Errorf("download: %v", err)
				continue
			}
			c.track(ctx, filename)
		default:
			filename, err := c.resolveVideo(line)
			if err != nil {
				log.Errorf("%v", err)
				continue
			}
			c.track(ctx, filename)
		}
	}
}

// printLibrary lists the videos with their most recent run summary.
func (c *cli) printLibrary() {
	videos, err := c.lib.ListVideos()
	if err != nil {
		log.Errorf("list videos: %v", err)
		return
	}

	fmt.Println()
	if len(videos) == 0 {
		fmt.Println("No videos in the library yet.")
		return
	}

	fmt.Println("Videos:")
	for i, v := range videos {
		line := fmt.Sprintf("  %d. %s", i+1, v)
		if run, err := c.st.Runs().LatestForVideo(v); err == nil && run != nil {
			line += fmt.Sprintf("  (last run: %d detections, %.1f%% coverage)",
				run.TotalDetections, run.Coverage*100)
		}
		fmt.Println(line)
	}
}

// resolveVideo maps a menu number or filename to a library video.
func (c *cli) resolveVideo(input string) (string, error) {
	videos, err := c.lib.ListVideos()
	if err != nil {
		return "", err
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(videos) {
			return "", fmt.Errorf("no video number %d", n)
		}
		return videos[n-1], nil
	}

	filename := input
	if filepath.Ext(filename) == "" {
		filename += ".mp4"
	}
	if _, err := os.Stat(c.lib.VideoPath(filename)); err != nil {
		return "", fmt.Errorf("no such video: %s", filename)
	}
	return filename, nil
}

// resolveURL returns a library filename for the URL, downloading it
// unless the cache already points at an existing file.
func (c *cli) resolveURL(ctx context.Context, url string) (string, error) {
	if filename, ok, err := c.st.Cache().Lookup(url); err != nil {
		log.Warnf("cache lookup: %v", err)
	} else if ok {
		if _, err := os.Stat(c.lib.VideoPath(filename)); err == nil {
			fmt.Printf("Already downloaded as %s\n", filename)
			return filename, nil
		}
	}

	name, ok := c.prompt("Name for this video (without extension): ")
	if !ok || name == "" {
		return "", fmt.Errorf("no name given")
	}

	fmt.Println("Downloading...")
	filename, err := c.dl.Download(ctx, url, name)
	if err != nil {
		return "", err
	}

	if err := c.st.Cache().Put(url, filename); err != nil {
		log.Warnf("cache update: %v", err)
	}
	return filename, nil
}

// track runs the pipeline for one video, then offers playback.
func (c *cli) track(ctx context.Context, filename string) {
	res, err := c.app.Process(ctx, filename)
	if err != nil {
		log.Errorf("tracking %s: %v", filename, err)
		return
	}

	if res.ArtifactErr != nil {
		log.Errorf("some artifacts failed: %v", res.ArtifactErr)
	}

	fmt.Printf("\nDone. %d detections across %d frames.\n",
		res.Stats.Combined.TotalDetections, res.Meta.FrameCount)
	fmt.Printf("Report:     %s\n", res.ReportPath)
	fmt.Printf("Trajectory: %s\n", res.TrajectoryPath)

	c.offerPlayback(ctx, filename, res)
}

func (c *cli) offerPlayback(ctx context.Context, filename string, res *app.Result) {
	// The tracked video only exists for this playback step; it is
	// removed whether or not the user watches it.
	defer func() {
		if err := os.Remove(res.TrackedPath); err != nil && !os.IsNotExist(err) {
			log.Warnf("could not remove %s: %v", res.TrackedPath, err)
		}
	}()

	fmt.Println("\nPlayback: 1) side by side  2) tracked only  3) skip")
	choice, ok := c.prompt("> ")
	if !ok {
		return
	}

	var err error
	switch choice {
	case "1":
		err = c.play.PlaySideBySide(ctx,
			c.lib.VideoPath(filename), res.TrackedPath,
			res.Meta.Width, res.Meta.Height)
	case "2":
		err = c.play.PlayTracked(ctx, res.TrackedPath, res.Meta.Width, res.Meta.Height)
	default:
		return
	}
	if err != nil {
		log.Errorf("playback: %v", err)
	}
}

func (c *cli) deleteVideo(arg string) {
	filename, err := c.resolveVideo(arg)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	if err := c.lib.DeleteVideo(filename); err != nil {
		log.Errorf("delete %s: %v", filename, err)
		return
	}
	fmt.Printf("Deleted %s\n", filename)
}

func (c *cli) clearCache() {
	if err := c.st.Cache().Clear(); err != nil {
		log.Errorf("clear cache: %v", err)
		return
	}
	fmt.Println("URL cache cleared.")
}

// prompt prints a prefix and reads one trimmed line; ok is false on EOF.
func (c *cli) prompt(prefix string) (string, bool) {
	fmt.Print(prefix)
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}
