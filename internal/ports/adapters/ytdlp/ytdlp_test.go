package ytdlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsimur87/YouTube-download-script-android/internal/types"
)

func TestParseInfo_Video(t *testing.T) {
	data := []byte(`{
		"id": "abc123",
		"title": "A Long Talk",
		"description": "00:00 Intro\n05:30 - The Build",
		"duration": 930.5,
		"abr": 129.5,
		"chapters": [
			{"start_time": 0, "end_time": 330, "title": "Intro"},
			{"start_time": 330, "end_time": 930, "title": "The Build"}
		]
	}`)

	info, err := parseInfo(data)
	require.NoError(t, err)
	assert.Equal(t, "abc123", info.ID)
	assert.Equal(t, "A Long Talk", info.Title)
	assert.Equal(t, 930.5, info.Duration)
	assert.Equal(t, 129.5, info.AudioBitrate)
	require.Len(t, info.Chapters, 2)
	assert.Equal(t, "The Build", info.Chapters[1].Title)
	assert.Equal(t, float64(330), info.Chapters[1].StartSeconds)
	assert.False(t, info.IsPlaylist())
}

func TestParseInfo_Playlist(t *testing.T) {
	data := []byte(`{
		"_type": "playlist",
		"id": "PL1",
		"title": "Course",
		"entries": [
			{"id": "v1", "title": "Lesson 1", "url": "https://youtu.be/v1"},
			{"id": "v2", "title": "Lesson 2", "url": "https://youtu.be/v2"}
		]
	}`)

	info, err := parseInfo(data)
	require.NoError(t, err)
	assert.True(t, info.IsPlaylist())
	require.Len(t, info.Entries, 2)
	assert.Equal(t, "Lesson 2", info.Entries[1].Title)
}

func TestParseInfo_Garbage(t *testing.T) {
	_, err := parseInfo([]byte("not json"))
	assert.Error(t, err)
}

func TestDownloadArgs(t *testing.T) {
	req := types.DownloadRequest{
		URL:            "https://example.test/watch?v=x",
		OutputDir:      "/tmp/out",
		OutputTemplate: "%(title)s.%(ext)s",
		Format:         "bestvideo+bestaudio/best",
		MergeMP4:       true,
	}
	args := downloadArgs(req)
	assert.Contains(t, args, "--merge-output-format")
	assert.Contains(t, args, "--no-playlist")
	assert.NotContains(t, args, "-x")
	assert.Equal(t, req.URL, args[len(args)-1])
}

func TestDownloadArgs_PlaylistMP3(t *testing.T) {
	req := types.DownloadRequest{
		URL:           "https://example.test/playlist?list=PL1",
		OutputDir:     "/tmp/out",
		Format:        "bestaudio/best",
		Playlist:      true,
		PlaylistStart: 2,
		PlaylistEnd:   5,
		ExtractMP3:    true,
		MP3Bitrate:    192,
	}
	args := downloadArgs(req)
	assert.Contains(t, args, "--yes-playlist")
	assert.Contains(t, args, "--playlist-start")
	assert.Contains(t, args, "--playlist-end")
	assert.Contains(t, args, "-x")
	assert.Contains(t, args, "192K")
	assert.NotContains(t, args, "--merge-output-format")
}

func TestSwapExt(t *testing.T) {
	assert.Equal(t, "/a/b/song.mp3", swapExt("/a/b/song.webm", ".mp3"))
	assert.Equal(t, "noext.mp3", swapExt("noext", ".mp3"))
}

func TestDetectKind(t *testing.T) {
	cases := map[string]Kind{
		"https://www.youtube.com/playlist?list=PL123": KindPlaylist,
		"https://www.youtube.com/watch?v=abc&list=PL": KindPlaylist,
		"https://www.youtube.com/watch?v=abc":         KindVideo,
		"https://youtu.be/abc":                        KindVideo,
	}
	for url, want := range cases {
		assert.Equal(t, want, DetectKind(url), url)
	}
}
