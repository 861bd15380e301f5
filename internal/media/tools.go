// Package media wraps the external tools the pipeline shells out to:
// yt-dlp for downloads, ffmpeg for re-encoding and audio muxing, and
// ffplay for playback.
package media

import "os/exec"

// Tools holds resolved paths to the ffmpeg executables.
type Tools struct {
	FFmpeg string
	FFplay string
}

// FindTools resolves ffmpeg and ffplay from PATH, falling back to the
// Windows executable names. Resolution failures are deferred to the
// first actual invocation, matching how missing tools surface anyway.
func FindTools() Tools {
	return Tools{
		FFmpeg: lookPath("ffmpeg", "ffmpeg.exe"),
		FFplay: lookPath("ffplay", "ffplay.exe"),
	}
}

func lookPath(names ...string) string {
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return names[0]
}
