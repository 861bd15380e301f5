package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"
	log "github.com/sirupsen/logrus"
)

// Downloader fetches videos into the library folder via yt-dlp.
type Downloader struct {
	VideoDir string
	Tools    Tools
}

// Download fetches url into the video directory under name (without
// extension) and returns the final filename. The best video+audio
// streams are merged to mp4, then re-encoded at half resolution. If the
// target file already exists it is reused without downloading.
func (d *Downloader) Download(ctx context.Context, url, name string) (string, error) {
	filename := name + ".mp4"
	outPath := filepath.Join(d.VideoDir, filename)

	if _, err := os.Stat(outPath); err == nil {
		log.Infof("file already exists: %s", outPath)
		return filename, nil
	}

	dl := ytdlp.New().
		Format("bestvideo+bestaudio/best").
		MergeOutputFormat("mp4").
		Output(filepath.Join(d.VideoDir, "tmp.%(ext)s")).
		Quiet().
		NoWarnings()

	if _, err := dl.Run(ctx, url); err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}

	tmpPath, err := d.findDownloaded()
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)

	if err := d.Tools.HalfScale(ctx, tmpPath, outPath); err != nil {
		return "", err
	}

	return filename, nil
}

// findDownloaded locates the temp file yt-dlp produced; the extension
// depends on the source container.
func (d *Downloader) findDownloaded() (string, error) {
	matches, err := filepath.Glob(filepath.Join(d.VideoDir, "tmp.*"))
	if err != nil {
		return "", fmt.Errorf("glob downloaded file: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("downloaded file not found in %s", d.VideoDir)
	}
	return matches[0], nil
}
