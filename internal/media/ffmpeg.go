package media

import (
	"context"
	"fmt"
	"os/exec"
)

// HalfScale re-encodes a video at half resolution with h264 video and
// aac audio. Downloaded videos are shrunk this way before tracking to
// keep inference time reasonable.
func (t Tools) HalfScale(ctx context.Context, in, out string) error {
	cmd := exec.CommandContext(ctx, t.FFmpeg,
		"-y",
		"-i", in,
		"-vf", "scale=iw/2:ih/2",
		"-c:v", "libx264",
		"-c:a", "aac",
		out,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg scale %s: %w: %s", in, err, output)
	}
	return nil
}

// MuxAudio combines the annotated (silent) video stream with the audio
// track of the original video, copying video without re-encoding.
func (t Tools) MuxAudio(ctx context.Context, tracked, original, out string) error {
	cmd := exec.CommandContext(ctx, t.FFmpeg,
		"-y",
		"-i", tracked,
		"-i", original,
		"-c:v", "copy",
		"-c:a", "aac",
		"-map", "0:v:0",
		"-map", "1:a:0",
		out,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mux %s: %w: %s", tracked, err, output)
	}
	return nil
}
