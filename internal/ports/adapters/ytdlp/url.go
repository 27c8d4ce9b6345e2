package ytdlp

import (
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies what a URL points at.
type Kind int

const (
	KindVideo Kind = iota
	KindPlaylist
)

var playlistIndicators = []string{
	"playlist?list=",
	"/playlists/",
	"&list=",
	"/playlist/",
}

// DetectKind guesses whether a URL is a playlist or a single video. The
// guess is confirmed with the user before it is acted on.
func DetectKind(url string) Kind {
	lower := strings.ToLower(url)
	for _, ind := range playlistIndicators {
		if strings.Contains(lower, ind) {
			return KindPlaylist
		}
	}
	return KindVideo
}

// FindCookies looks for a cookies.txt in the usual spots: next to the
// working directory, on shared Android storage, and in the home directory.
// Returns "" when none exists.
func FindCookies() string {
	home, _ := os.UserHomeDir()
	candidates := []string{
		"cookies.txt",
		"/storage/emulated/0/cookies.txt",
		"/storage/emulated/0/Download/cookies.txt",
		"/storage/emulated/0/Downloads/cookies.txt",
	}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, "cookies.txt"))
	}
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}
