package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "ytgrab <url>",
		Short:        "Download a YouTube video or playlist, then cut or split it by chapters",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "", "Output directory (default: device download dir)")
	root.Flags().String("cookies", "", "Path to cookies.txt")
	root.Flags().String("config", "ytgrab.yaml", "Path to config file")

	// Hidden tuning flags (internal)
	root.Flags().Duration("segment-timeout", 0, "Per-segment extraction timeout")
	root.Flags().String("ffmpeg", "", "ffmpeg binary")
	root.Flags().String("ffprobe", "", "ffprobe binary")
	root.Flags().String("ytdlp", "", "yt-dlp binary")
	for _, f := range []string{"segment-timeout", "ffmpeg", "ffprobe", "ytdlp"} {
		_ = root.Flags().MarkHidden(f)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
