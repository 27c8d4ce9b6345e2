package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/tsimur87/YouTube-download-script-android/internal/domain/timecode"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	// Termux needs the full environment passed through to find its tools.
	cmd.Env = os.Environ()
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

// ExtractRange remuxes [start, end] of inPath into outPath via stream copy.
// No re-encoding happens, so cuts land on the nearest keyframes.
func (a *Adapter) ExtractRange(ctx context.Context, inPath string, start, end timecode.TimeCode, outPath string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-ss", start.String(),
		"-to", end.String(),
		"-i", inPath,
		"-c", "copy",
		"-avoid_negative_ts", "1",
		outPath,
	)
	cmd.Env = os.Environ()
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract range: %w\n%s", err, string(b))
	}
	return nil
}

// Available probes for the ffmpeg binary. Used for the startup dependency
// check; a missing tool is reported, not fatal.
func (a *Adapter) Available(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, "-version")
	cmd.Env = os.Environ()
	if b, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg not available: %w\n%s", err, string(b))
	}
	return nil
}
