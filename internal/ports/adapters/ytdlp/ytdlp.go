// Package ytdlp drives the yt-dlp command line tool for metadata inspection
// and media download.
package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tsimur87/YouTube-download-script-android/internal/types"
)

type Adapter struct {
	bin string
	// Progress is where download output streams; defaults to os.Stdout.
	Progress io.Writer
}

func New(binPath string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	return &Adapter{bin: binPath, Progress: os.Stdout}
}

// rawInfo mirrors the subset of `yt-dlp -J` output the tool consumes.
type rawInfo struct {
	Type        string          `json:"_type"`
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    float64         `json:"duration"`
	ABR         float64         `json:"abr"`
	Chapters    []types.Chapter `json:"chapters"`
	Entries     []rawEntry      `json:"entries"`
}

type rawEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (a *Adapter) Inspect(ctx context.Context, url string, playlistHint bool) (types.MediaInfo, error) {
	args := []string{
		"-J",
		"--no-warnings",
		"--no-check-certificates",
		"--ignore-errors",
	}
	if playlistHint {
		args = append(args, "--flat-playlist")
	} else {
		args = append(args, "--no-playlist")
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, a.bin, args...)
	cmd.Env = os.Environ()
	out, err := cmd.Output()
	if err != nil {
		return types.MediaInfo{}, fmt.Errorf("yt-dlp inspect: %w%s", err, stderrOf(err))
	}
	return parseInfo(out)
}

func parseInfo(data []byte) (types.MediaInfo, error) {
	var raw rawInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.MediaInfo{}, fmt.Errorf("parse yt-dlp metadata: %w", err)
	}
	info := types.MediaInfo{
		ID:           raw.ID,
		Title:        raw.Title,
		Description:  raw.Description,
		Duration:     raw.Duration,
		AudioBitrate: raw.ABR,
		Chapters:     raw.Chapters,
	}
	for _, e := range raw.Entries {
		info.Entries = append(info.Entries, types.PlaylistEntry(e))
	}
	return info, nil
}

// Download runs yt-dlp and returns the local paths it produced. The output
// paths are predicted with `--print filename` first, because the download
// run streams its progress to the user and its stdout is not parseable.
func (a *Adapter) Download(ctx context.Context, req types.DownloadRequest) (types.DownloadResult, error) {
	paths, err := a.predictPaths(ctx, req)
	if err != nil {
		return types.DownloadResult{}, err
	}

	cmd := exec.CommandContext(ctx, a.bin, downloadArgs(req)...)
	cmd.Env = os.Environ()
	w := a.Progress
	if w == nil {
		w = os.Stdout
	}
	cmd.Stdout = w
	cmd.Stderr = w
	if err := cmd.Run(); err != nil {
		return types.DownloadResult{}, fmt.Errorf("yt-dlp download: %w", err)
	}

	res := types.DownloadResult{}
	for _, p := range paths {
		if req.ExtractMP3 {
			// The MP3 post-processor replaces the container; mirror its
			// rename the same way the progress hook used to.
			res.AudioPaths = append(res.AudioPaths, swapExt(p, ".mp3"))
			continue
		}
		if res.VideoPath == "" {
			res.VideoPath = p
		}
	}
	return res, nil
}

func (a *Adapter) predictPaths(ctx context.Context, req types.DownloadRequest) ([]string, error) {
	args := append(commonArgs(req), "--print", "filename", req.URL)
	cmd := exec.CommandContext(ctx, a.bin, args...)
	cmd.Env = os.Environ()
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp resolve filenames: %w%s", err, stderrOf(err))
	}
	var paths []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("yt-dlp resolved no output files for %s", req.URL)
	}
	return paths, nil
}

func commonArgs(req types.DownloadRequest) []string {
	tmpl := req.OutputTemplate
	if tmpl == "" {
		tmpl = "%(title)s.%(ext)s"
	}
	args := []string{
		"-f", req.Format,
		"-o", filepath.Join(req.OutputDir, tmpl),
		"--no-check-certificates",
		"--ignore-errors",
	}
	if req.MergeMP4 {
		args = append(args, "--merge-output-format", "mp4")
	}
	if req.Playlist {
		args = append(args, "--yes-playlist")
		if req.PlaylistStart > 0 {
			args = append(args, "--playlist-start", strconv.Itoa(req.PlaylistStart))
		}
		if req.PlaylistEnd > 0 {
			args = append(args, "--playlist-end", strconv.Itoa(req.PlaylistEnd))
		}
	} else {
		args = append(args, "--no-playlist")
	}
	if req.CookiesPath != "" {
		args = append(args, "--cookies", req.CookiesPath)
	}
	return args
}

func downloadArgs(req types.DownloadRequest) []string {
	args := append(commonArgs(req),
		"--retries", "10",
		"--fragment-retries", "20",
		"--continue",
		"--no-part",
		"--newline",
	)
	if req.ExtractMP3 {
		args = append(args, "-x", "--audio-format", "mp3")
		if req.MP3Bitrate > 0 {
			args = append(args, "--audio-quality", fmt.Sprintf("%dK", req.MP3Bitrate))
		}
	}
	return append(args, req.URL)
}

func swapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// Available probes for the yt-dlp binary.
func (a *Adapter) Available(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, a.bin, "--version")
	cmd.Env = os.Environ()
	if b, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("yt-dlp not available: %w\n%s", err, string(b))
	}
	return nil
}

func stderrOf(err error) string {
	var ee *exec.ExitError
	if errors.As(err, &ee) && len(ee.Stderr) > 0 {
		return "\n" + string(ee.Stderr)
	}
	return ""
}
