package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsimur87/YouTube-download-script-android/internal/pipeline"
)

func run(cmd *cobra.Command, url string) error {
	outDir, _ := cmd.Flags().GetString("out")
	cookies, _ := cmd.Flags().GetString("cookies")
	configPath, _ := cmd.Flags().GetString("config")
	segTimeout, _ := cmd.Flags().GetDuration("segment-timeout")
	ffmpegPath, _ := cmd.Flags().GetString("ffmpeg")
	ffprobePath, _ := cmd.Flags().GetString("ffprobe")
	ytdlpPath, _ := cmd.Flags().GetString("ytdlp")

	// Ctrl+C finishes the current segment boundary instead of leaving
	// half-written files behind. SIGHUP covers a dropped Termux session.
	ctx, stop := signal.NotifyContext(cmd.Context(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	cfg := pipeline.Config{
		URL:            url,
		OutDir:         outDir,
		CookiesPath:    cookies,
		ConfigPath:     configPath,
		FFmpegPath:     ffmpegPath,
		FFprobePath:    ffprobePath,
		YtDlpPath:      ytdlpPath,
		SegmentTimeout: segTimeout,
		Logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}
