package types

// Chapter is a named timestamp marker reported by the platform metadata.
type Chapter struct {
	StartSeconds float64 `json:"start_time"`
	EndSeconds   float64 `json:"end_time"`
	Title        string  `json:"title"`
}

// PlaylistEntry is one item of a flat playlist listing.
type PlaylistEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MediaInfo is what the fetcher reports for a URL before downloading.
// For playlists only Title and Entries are populated.
type MediaInfo struct {
	ID           string
	Title        string
	Description  string
	Duration     float64
	AudioBitrate float64
	Chapters     []Chapter
	Entries      []PlaylistEntry
}

// IsPlaylist reports whether the info describes a playlist rather than a
// single video.
func (m MediaInfo) IsPlaylist() bool { return len(m.Entries) > 0 }

// DownloadRequest describes one fetcher invocation.
type DownloadRequest struct {
	URL            string
	OutputDir      string
	OutputTemplate string
	Format         string
	MergeMP4       bool
	Playlist       bool
	PlaylistStart  int // 1-based, 0 = from the first entry
	PlaylistEnd    int // inclusive, 0 = through the last entry
	CookiesPath    string
	ExtractMP3     bool
	MP3Bitrate     int // kbps
}

// DownloadResult carries the local paths produced by a download.
type DownloadResult struct {
	VideoPath  string
	AudioPaths []string
}

// SegmentFailure records one segment that could not be extracted.
type SegmentFailure struct {
	Index  int    `json:"index"` // 1-based position in the processed list
	Reason string `json:"reason"`
}

// SplitReport is the aggregate outcome of a split run. Succeeded holds the
// output paths in processing order; Failed holds one entry per segment that
// was skipped or rejected by the media tool.
type SplitReport struct {
	Succeeded []string         `json:"succeeded"`
	Failed    []SegmentFailure `json:"failed"`
}

// Total is the number of segments that were attempted.
func (r SplitReport) Total() int { return len(r.Succeeded) + len(r.Failed) }

// OK reports aggregate success: at least one segment materialized. Partial
// success still counts.
func (r SplitReport) OK() bool { return len(r.Succeeded) > 0 }
