package media

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"
)

// DefaultScreenWidth is assumed when the config does not say otherwise.
const DefaultScreenWidth = 1920

// Player plays videos through ffplay.
type Player struct {
	Tools       Tools
	ScreenWidth int
}

// PlayTracked plays a single video and blocks until playback finishes.
func (p *Player) PlayTracked(ctx context.Context, path string, width, height int) error {
	cmd := exec.CommandContext(ctx, p.Tools.FFplay,
		"-autoexit",
		"-window_title", "Tracked - "+filepath.Base(path),
		"-x", fmt.Sprint(width),
		"-y", fmt.Sprint(height),
		path,
	)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffplay %s: %w", path, err)
	}
	return nil
}

// PlaySideBySide plays the original and the tracked video in two windows
// positioned next to each other, blocking until both close. The tracked
// window is muted so only the original's audio plays.
func (p *Player) PlaySideBySide(ctx context.Context, original, tracked string, width, height int) error {
	leftX, rightX, topY := windowPositions(p.screenWidth(), width)

	origCmd := exec.CommandContext(ctx, p.Tools.FFplay,
		"-autoexit",
		"-window_title", "Original - "+filepath.Base(original),
		"-x", fmt.Sprint(width),
		"-y", fmt.Sprint(height),
		"-left", fmt.Sprint(leftX),
		"-top", fmt.Sprint(topY),
		original,
	)
	if err := origCmd.Start(); err != nil {
		return fmt.Errorf("ffplay %s: %w", original, err)
	}

	// Stagger slightly so the windows stack predictably.
	time.Sleep(250 * time.Millisecond)

	trackedCmd := exec.CommandContext(ctx, p.Tools.FFplay,
		"-autoexit",
		"-window_title", "Tracked - "+filepath.Base(tracked),
		"-x", fmt.Sprint(width),
		"-y", fmt.Sprint(height),
		"-left", fmt.Sprint(rightX),
		"-top", fmt.Sprint(topY),
		"-an",
		tracked,
	)
	if err := trackedCmd.Start(); err != nil {
		origCmd.Wait()
		return fmt.Errorf("ffplay %s: %w", tracked, err)
	}

	origErr := origCmd.Wait()
	trackedErr := trackedCmd.Wait()
	if origErr != nil {
		return fmt.Errorf("ffplay %s: %w", original, origErr)
	}
	if trackedErr != nil {
		return fmt.Errorf("ffplay %s: %w", tracked, trackedErr)
	}
	return nil
}

func (p *Player) screenWidth() int {
	if p.ScreenWidth > 0 {
		return p.ScreenWidth
	}
	return DefaultScreenWidth
}

// windowPositions centers two video windows of the given width on a
// screen, returning the left window x, right window x, and shared top y.
func windowPositions(screenWidth, videoWidth int) (leftX, rightX, topY int) {
	totalWidth := videoWidth * 2
	startX := (screenWidth - totalWidth) / 2
	if startX < 0 {
		startX = 0
	}
	return startX, startX + videoWidth, 100
}
