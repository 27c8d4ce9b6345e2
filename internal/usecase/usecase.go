package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/creachadair/stringset"
	"github.com/creachadair/atomicfile"

	"github.com/tsimur87/YouTube-download-script-android/internal/domain/audio"
	"github.com/tsimur87/YouTube-download-script-android/internal/domain/chapters"
	"github.com/tsimur87/YouTube-download-script-android/internal/domain/filename"
	"github.com/tsimur87/YouTube-download-script-android/internal/domain/segments"
	"github.com/tsimur87/YouTube-download-script-android/internal/domain/timecode"
	"github.com/tsimur87/YouTube-download-script-android/internal/ports"
	"github.com/tsimur87/YouTube-download-script-android/internal/types"
)

type Deps struct {
	Fetch  ports.Fetcher
	Media  ports.MediaTool
	Prompt ports.Prompter
	Scribe ports.Transcriber

	// SegmentTimeout bounds each external extraction; zero means unbounded.
	SegmentTimeout time.Duration

	Logf func(format string, args ...any)
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logf == nil {
		d.Logf = func(string, ...any) {}
	}
	return Usecase{d: d}
}

// LanguageOption is one transcription language with its model choices.
type LanguageOption struct {
	Language string
	Default  string
	Models   []string
}

type Input struct {
	URL           string
	BaseDir       string
	CookiesPath   string
	PlaylistGuess bool
	Transcription []LanguageOption
}

type mode int

const (
	modeFull mode = iota
	modeCut
	modeChapters
)

// Run drives one interactive session: confirm the URL type, pick quality and
// action, download, then cut or split as requested.
func (u Usecase) Run(ctx context.Context, in Input) error {
	isPlaylist, err := u.confirmKind(in.PlaylistGuess)
	if err != nil {
		return err
	}

	if isPlaylist {
		u.d.Logf("analyzing playlist...")
	} else {
		u.d.Logf("analyzing video...")
	}
	info, err := u.d.Fetch.Inspect(ctx, in.URL, isPlaylist)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", in.URL, err)
	}
	if isPlaylist && len(info.Entries) == 0 {
		return errors.New("playlist has no entries")
	}

	title := filename.Sanitize(info.Title)
	if title == "" {
		title = "YT_Download"
	}
	total := 1
	if isPlaylist {
		total = len(info.Entries)
		u.d.Logf("playlist: %s (%d videos)", title, total)
	} else {
		u.d.Logf("video: %s", title)
	}

	qualityIdx, err := u.d.Prompt.Choice("\nQuality:",
		[]string{"Auto", "<= 1080p", "<= 720p", "<= 360p", "Audio only"}, 0)
	if err != nil {
		return err
	}
	format, audioOnly := formatFor(qualityIdx)

	var (
		wantMP3          bool
		mp3Bitrate       int
		action           = modeFull
		cutStart, cutEnd timecode.TimeCode
	)
	switch {
	case audioOnly:
		c, err := u.d.Prompt.Choice("\nAudio action?", []string{"Download", "Convert to MP3"}, 0)
		if err != nil {
			return err
		}
		if c == 1 {
			wantMP3 = true
			if mp3Bitrate, err = u.chooseBitrate(info.AudioBitrate); err != nil {
				return err
			}
		}
	case !isPlaylist:
		action, cutStart, cutEnd, err = u.chooseVideoAction()
		if err != nil {
			return err
		}
	}

	playlistStart, playlistEnd := 0, 0
	if isPlaylist {
		expr, err := u.d.Prompt.Line(fmt.Sprintf("Range (Enter=all, example 1-5) of %d: ", total))
		if err != nil {
			return err
		}
		if sel := segments.ParseSelection(expr, total); len(sel) > 0 {
			playlistStart, playlistEnd = sel[0], sel[len(sel)-1]
		}
	}

	saveDir := filepath.Join(in.BaseDir, title)
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		saveDir = in.BaseDir
	}
	u.d.Logf("saving to: %s", saveDir)

	tmpl := "%(title)s.%(ext)s"
	if isPlaylist {
		width := len(strconv.Itoa(total))
		tmpl = fmt.Sprintf("%%(playlist_index)0%dd - %%(title)s.%%(ext)s", width)
	}

	u.d.Logf("starting download...")
	res, err := u.d.Fetch.Download(ctx, types.DownloadRequest{
		URL:            in.URL,
		OutputDir:      saveDir,
		OutputTemplate: tmpl,
		Format:         format,
		MergeMP4:       !audioOnly,
		Playlist:       isPlaylist,
		PlaylistStart:  playlistStart,
		PlaylistEnd:    playlistEnd,
		CookiesPath:    in.CookiesPath,
		ExtractMP3:     wantMP3,
		MP3Bitrate:     mp3Bitrate,
	})
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}

	switch {
	case wantMP3 && len(res.AudioPaths) > 0:
		u.maybeTranscribe(ctx, in.Transcription, res.AudioPaths)
	case action == modeCut && res.VideoPath != "":
		u.d.Logf("=== Cutting video part ===")
		out, err := u.CutRange(ctx, res.VideoPath, cutStart, cutEnd, saveDir)
		if err != nil {
			return fmt.Errorf("cut: %w", err)
		}
		u.d.Logf("created: %s", filepath.Base(out))
	case action == modeChapters && res.VideoPath != "":
		u.d.Logf("=== Splitting by chapters ===")
		report, err := u.SplitByChapters(ctx, info, res.VideoPath, filepath.Join(saveDir, "chapters"))
		if err != nil {
			return err
		}
		if report.Total() > 0 && !report.OK() {
			return errors.New("all segments failed")
		}
	}

	if isPlaylist && !audioOnly {
		u.tidyPlaylistNames(saveDir)
	}

	u.d.Logf("=== Done ===")
	return nil
}

func (u Usecase) confirmKind(playlistGuess bool) (bool, error) {
	label := "video"
	if playlistGuess {
		label = "playlist"
	}
	c, err := u.d.Prompt.Choice(fmt.Sprintf("Detected type: %s. Correct?", label),
		[]string{"Yes", "No, it's a playlist", "No, it's a video"}, 0)
	if err != nil {
		return false, err
	}
	switch c {
	case 1:
		return true, nil
	case 2:
		return false, nil
	default:
		return playlistGuess, nil
	}
}

func (u Usecase) chooseVideoAction() (mode, timecode.TimeCode, timecode.TimeCode, error) {
	c, err := u.d.Prompt.Choice("\nVideo action?",
		[]string{"Download full", "Cut part", "Split by chapters"}, 0)
	if err != nil || c == 0 {
		return modeFull, "", "", err
	}
	if c == 2 {
		return modeChapters, "", "", nil
	}

	u.d.Logf("time format: HH:MM:SS or MM:SS")
	rawStart, err := u.d.Prompt.Line("Start (Enter = from beginning): ")
	if err != nil {
		return modeFull, "", "", err
	}
	rawEnd, err := u.d.Prompt.Line("End (Enter = to end): ")
	if err != nil {
		return modeFull, "", "", err
	}
	start, _ := timecode.Parse(rawStart)
	end, _ := timecode.Parse(rawEnd)
	if start.IsZero() && end.IsZero() {
		// Nothing usable entered; treat as a full download.
		return modeFull, "", "", nil
	}
	if start.IsZero() {
		start = timecode.Zero
	}
	return modeCut, start, end, nil
}

func (u Usecase) chooseBitrate(sourceKbps float64) (int, error) {
	options := make([]string, 0, len(audio.Bitrates)+1)
	options = append(options, "Auto (match source)")
	for _, b := range audio.Bitrates {
		options = append(options, fmt.Sprintf("%d kbps", b))
	}
	c, err := u.d.Prompt.Choice("\nMP3 quality:", options, 0)
	if err != nil {
		return 0, err
	}
	if c == 0 {
		best := audio.BestBitrate(sourceKbps)
		u.d.Logf("auto-selected MP3 quality: %d kbps", best)
		return best, nil
	}
	return audio.Bitrates[c-1], nil
}

// CutRange extracts [start, end] of sourcePath into a "_cut.mp4" sibling and
// removes the source on success. An open end means "to the end of the video"
// and is resolved by probing.
func (u Usecase) CutRange(ctx context.Context, sourcePath string, start, end timecode.TimeCode, outDir string) (string, error) {
	if start.IsZero() {
		start = timecode.Zero
	}
	if end.IsZero() {
		d, err := u.d.Media.ProbeDuration(ctx, sourcePath)
		if err != nil {
			return "", fmt.Errorf("probe duration: %w", err)
		}
		end = timecode.FromSeconds(int(d / time.Second))
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	outPath := filepath.Join(outDir, base+"_cut.mp4")
	u.d.Logf("cutting: %s - %s", start, end)
	if err := u.extract(ctx, sourcePath, start, end, outPath); err != nil {
		return "", err
	}
	// Keep only the cut; the full download was just an intermediate.
	if err := os.Remove(sourcePath); err != nil {
		u.d.Logf("could not remove original: %v", err)
	}
	return outPath, nil
}

// SplitByChapters derives segments for the video (platform chapters first,
// then the description heuristic, then optional manual entry), lets the user
// narrow the list, resolves open ends against the probed duration, and
// splits the file.
func (u Usecase) SplitByChapters(ctx context.Context, info types.MediaInfo, videoPath, outDir string) (types.SplitReport, error) {
	segs := chapters.FromMetadata(info.Chapters)
	if len(segs) == 0 {
		segs = chapters.FromDescription(info.Description)
	}
	if len(segs) == 0 {
		u.d.Logf("no chapters found")
		yes, err := u.d.Prompt.YesNo("Enter timecodes manually?", true)
		if err != nil || !yes {
			return types.SplitReport{}, err
		}
		line, err := u.d.Prompt.Line("\nTimecodes (examples: 5:30 or 5:30-10:45): ")
		if err != nil {
			return types.SplitReport{}, err
		}
		segs = chapters.ParseManual(line)
	}
	if len(segs) == 0 {
		u.d.Logf("no segments to split")
		return types.SplitReport{}, nil
	}

	set := segments.NewSet(segs)
	if set.Len() > 1 {
		expr, err := u.d.Prompt.Line("\nSelect segments (Enter=all): ")
		if err != nil {
			return types.SplitReport{}, err
		}
		set = set.Select(expr)
	}

	// Resolution must see the final, filtered order: open ends borrow the
	// next selected segment's start.
	d, err := u.d.Media.ProbeDuration(ctx, videoPath)
	if err != nil {
		return types.SplitReport{}, fmt.Errorf("probe duration: %w", err)
	}
	resolved := set.Resolve(timecode.FromSeconds(int(d / time.Second)))

	return u.SplitSegments(ctx, videoPath, resolved, outDir)
}

// SplitSegments materializes each resolved segment of sourcePath as its own
// file under outDir. One failing segment never aborts the rest; the report
// carries both outcomes. An empty segment list or an unprobeable source is a
// precondition failure that aborts the whole operation.
func (u Usecase) SplitSegments(ctx context.Context, sourcePath string, segs []segments.Segment, outDir string) (types.SplitReport, error) {
	var report types.SplitReport
	if len(segs) == 0 {
		return report, errors.New("no segments to split")
	}
	if _, err := u.d.Media.ProbeDuration(ctx, sourcePath); err != nil {
		return report, fmt.Errorf("cannot determine source duration: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return report, fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	used := stringset.New()
	u.d.Logf("splitting video into %d parts...", len(segs))

	for i, seg := range segs {
		idx := i + 1
		// Honor cancellation between segments; an in-flight extraction is
		// torn down by the command's context.
		if err := ctx.Err(); err != nil {
			return report, err
		}
		u.d.Logf("processing %d/%d: %s - %s", idx, len(segs), seg.Start, seg.End)
		outPath, err := u.extractSegment(ctx, sourcePath, base, seg, outDir, used)
		if err != nil {
			u.d.Logf("segment %d failed: %v", idx, err)
			report.Failed = append(report.Failed, types.SegmentFailure{Index: idx, Reason: err.Error()})
			continue
		}
		u.d.Logf("created: %s", filepath.Base(outPath))
		report.Succeeded = append(report.Succeeded, outPath)
	}

	u.d.Logf("split finished: %d/%d succeeded", len(report.Succeeded), report.Total())
	if err := u.writeReport(outDir, report); err != nil {
		u.d.Logf("report not written: %v", err)
	}
	return report, nil
}

func (u Usecase) extractSegment(ctx context.Context, sourcePath, base string, seg segments.Segment, outDir string, used stringset.Set) (string, error) {
	if !seg.Resolved() {
		return "", errors.New("segment end is unresolved")
	}
	if seg.End.Seconds() <= seg.Start.Seconds() {
		return "", fmt.Errorf("end %s is not after start %s", seg.End, seg.Start)
	}

	name := filename.Sanitize(seg.Name)
	outName := fmt.Sprintf("%s - %s.mp4", base, name)
	for n := 2; used.Contains(outName); n++ {
		outName = fmt.Sprintf("%s - %s (%d).mp4", base, name, n)
	}
	used.Add(outName)

	outPath := filepath.Join(outDir, outName)
	if err := u.extract(ctx, sourcePath, seg.Start, seg.End, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

func (u Usecase) extract(ctx context.Context, sourcePath string, start, end timecode.TimeCode, outPath string) error {
	if u.d.SegmentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.d.SegmentTimeout)
		defer cancel()
	}
	return u.d.Media.ExtractRange(ctx, sourcePath, start, end, outPath)
}

func (u Usecase) writeReport(outDir string, report types.SplitReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	f, err := atomicfile.New(filepath.Join(outDir, "report.json"), 0o644)
	if err != nil {
		return err
	}
	defer f.Cancel()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Close()
}

func (u Usecase) maybeTranscribe(ctx context.Context, langs []LanguageOption, audioPaths []string) {
	if u.d.Scribe == nil || len(langs) == 0 {
		return
	}
	yes, err := u.d.Prompt.YesNo("\nTranscribe downloaded audio?", false)
	if err != nil || !yes {
		return
	}

	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = l.Language
	}
	li, err := u.d.Prompt.Choice("Language:", names, 0)
	if err != nil {
		return
	}
	lang := langs[li]

	model := lang.Default
	if len(lang.Models) > 1 {
		def := 0
		for i, m := range lang.Models {
			if m == lang.Default {
				def = i
				break
			}
		}
		mi, err := u.d.Prompt.Choice("Model:", lang.Models, def)
		if err != nil {
			return
		}
		model = lang.Models[mi]
	}

	for _, p := range audioPaths {
		u.d.Logf("transcribing: %s", filepath.Base(p))
		if err := u.d.Scribe.Transcribe(ctx, p, lang.Language, model); err != nil {
			u.d.Logf("transcription failed: %v", err)
			continue
		}
		u.d.Logf("transcription finished: %s", filepath.Base(p))
	}
}

// tidyPlaylistNames normalizes downloaded playlist entry names, keeping a
// recognizable chapter number while dropping redundant index prefixes.
func (u Usecase) tidyPlaylistNames(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		clean := filename.CleanPlaylistName(e.Name())
		if clean == e.Name() || clean == "" {
			continue
		}
		target := filepath.Join(dir, clean)
		if _, err := os.Stat(target); err == nil {
			continue // never clobber another entry
		}
		if err := os.Rename(filepath.Join(dir, e.Name()), target); err == nil {
			u.d.Logf("renamed: %s -> %s", e.Name(), clean)
		}
	}
}

func formatFor(choice int) (format string, audioOnly bool) {
	switch choice {
	case 1:
		return "bestvideo[height<=1080]+bestaudio/best[height<=1080]/best", false
	case 2:
		return "bestvideo[height<=720]+bestaudio/best[height<=720]/best", false
	case 3:
		return "bestvideo[height<=360]+bestaudio/best[height<=360]/best", false
	case 4:
		return "bestaudio/best", true
	default:
		return "bestvideo+bestaudio/best", false
	}
}
