// Package pipeline wires the adapters together and runs one download
// session end to end.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tsimur87/YouTube-download-script-android/internal/config"
	"github.com/tsimur87/YouTube-download-script-android/internal/ports"
	"github.com/tsimur87/YouTube-download-script-android/internal/ports/adapters/ffmpeg"
	"github.com/tsimur87/YouTube-download-script-android/internal/ports/adapters/termux"
	"github.com/tsimur87/YouTube-download-script-android/internal/ports/adapters/whisper"
	"github.com/tsimur87/YouTube-download-script-android/internal/ports/adapters/ytdlp"
	"github.com/tsimur87/YouTube-download-script-android/internal/prompt"
	"github.com/tsimur87/YouTube-download-script-android/internal/usecase"
)

type Config struct {
	URL string

	// OutDir overrides the probed download directory.
	OutDir string

	// CookiesPath overrides the cookies.txt search.
	CookiesPath string

	// ConfigPath points at an optional ytgrab.yaml.
	ConfigPath string

	FFmpegPath  string
	FFprobePath string
	YtDlpPath   string

	// SegmentTimeout bounds each ffmpeg extraction; zero means the config
	// value (or unbounded).
	SegmentTimeout time.Duration

	Logf func(format string, args ...any)

	// Stdin and Stdout carry the interactive prompts.
	Stdin  io.Reader
	Stdout io.Writer
}

func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("url is empty")
	}
	if c.Stdin == nil || c.Stdout == nil {
		return errors.New("stdin/stdout are required")
	}
	if c.SegmentTimeout < 0 {
		return fmt.Errorf("segment timeout must be >= 0, got %s", c.SegmentTimeout)
	}
	return nil
}

func Run(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fileCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return err
	}
	merged := mergeConfig(fileCfg, cfg)

	// adapters
	media := ffmpeg.New(merged.FFmpegPath, merged.FFprobePath)
	fetch := ytdlp.New(merged.YtDlpPath)
	fetch.Progress = cfg.Stdout
	scribe := whisper.New(merged.TranscribeCommand, merged.TranscribeTimeout.Std(), logf)
	ask := prompt.New(cfg.Stdin, cfg.Stdout)

	checkTools(ctx, media, fetch, logf)

	release, locked := termux.NewWakeLock().Acquire(ctx)
	defer release()
	if locked {
		logf("wake lock acquired")
	}

	baseDir := cfg.OutDir
	if baseDir == "" {
		baseDir = merged.DownloadDir
	}
	if baseDir == "" {
		baseDir = termux.DownloadDir()
	}

	cookies := cfg.CookiesPath
	if cookies == "" {
		cookies = ytdlp.FindCookies()
	}
	if cookies != "" {
		logf("using cookies: %s", cookies)
	}

	segTimeout := cfg.SegmentTimeout
	if segTimeout == 0 {
		segTimeout = merged.SegmentTimeout.Std()
	}

	uc := usecase.New(usecase.Deps{
		Fetch:          fetch,
		Media:          media,
		Prompt:         ask,
		Scribe:         scribe,
		SegmentTimeout: segTimeout,
		Logf:           logf,
	})

	return uc.Run(ctx, usecase.Input{
		URL:           cfg.URL,
		BaseDir:       baseDir,
		CookiesPath:   cookies,
		PlaylistGuess: ytdlp.DetectKind(cfg.URL) == ytdlp.KindPlaylist,
		Transcription: languageOptions(merged),
	})
}

func mergeConfig(fileCfg config.Config, cfg Config) config.Config {
	if cfg.FFmpegPath != "" {
		fileCfg.FFmpegPath = cfg.FFmpegPath
	}
	if cfg.FFprobePath != "" {
		fileCfg.FFprobePath = cfg.FFprobePath
	}
	if cfg.YtDlpPath != "" {
		fileCfg.YtDlpPath = cfg.YtDlpPath
	}
	return fileCfg
}

// checkTools probes the external binaries once up front so a missing tool
// surfaces before any prompts, not mid-download. A missing tool is a
// warning: ffprobe matters only for splitting, and the user may still abort.
func checkTools(ctx context.Context, media *ffmpeg.Adapter, fetch *ytdlp.Adapter, logf func(string, ...any)) {
	pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := fetch.Available(pctx); err != nil {
		logf("warning: yt-dlp not found (%v); downloads will fail", err)
	}
	if err := media.Available(pctx); err != nil {
		logf("warning: ffmpeg not found (%v); cutting and splitting will fail", err)
	}
}

func languageOptions(cfg config.Config) []usecase.LanguageOption {
	langs := make([]string, 0, len(cfg.Models))
	for l := range cfg.Models {
		langs = append(langs, l)
	}
	sort.Strings(langs)

	opts := make([]usecase.LanguageOption, 0, len(langs))
	for _, l := range langs {
		lm := cfg.Models[l]
		opts = append(opts, usecase.LanguageOption{
			Language: l,
			Default:  lm.Default,
			Models:   lm.Models,
		})
	}
	return opts
}

// ensure adapters implement ports
var _ ports.MediaTool = (*ffmpeg.Adapter)(nil)
var _ ports.Fetcher = (*ytdlp.Adapter)(nil)
var _ ports.Transcriber = (*whisper.Adapter)(nil)
var _ ports.Prompter = (*prompt.Prompter)(nil)
var _ ports.WakeLocker = (*termux.WakeLock)(nil)
