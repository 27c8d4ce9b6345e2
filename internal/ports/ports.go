package ports

import (
	"context"
	"time"

	"github.com/tsimur87/YouTube-download-script-android/internal/domain/timecode"
	"github.com/tsimur87/YouTube-download-script-android/internal/types"
)

// MediaTool is the external media processing tool (ffmpeg/ffprobe).
type MediaTool interface {
	// ProbeDuration inspects the container and returns the total duration.
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
	// ExtractRange copies [start, end] of inPath into outPath without
	// re-encoding, overwriting any existing file at outPath.
	ExtractRange(ctx context.Context, inPath string, start, end timecode.TimeCode, outPath string) error
}

// Fetcher is the remote media platform client.
type Fetcher interface {
	// Inspect fetches metadata without downloading. playlistHint asks for a
	// flat listing of entries instead of per-video detail.
	Inspect(ctx context.Context, url string, playlistHint bool) (types.MediaInfo, error)
	// Download fetches media per the request and returns the local paths it
	// produced.
	Download(ctx context.Context, req types.DownloadRequest) (types.DownloadResult, error)
}

// Prompter collects already-validated strings from the user. The core never
// reads a terminal directly.
type Prompter interface {
	Line(label string) (string, error)
	// Choice renders numbered options and returns the chosen 0-based index.
	// Enter picks def.
	Choice(label string, options []string, def int) (int, error)
	YesNo(label string, def bool) (bool, error)
}

// Transcriber runs speech transcription as a fire-and-forget external
// command with its own timeout and crash detection.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language, model string) error
}

// WakeLocker keeps the device awake for the duration of a run. Acquire
// returns a release func that is always safe to call, and ok=false when the
// platform has no wake lock facility.
type WakeLocker interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
