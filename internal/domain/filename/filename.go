// Package filename keeps generated file names safe and tidy.
package filename

import (
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = strings.NewReplacer(
	`\`, "_",
	"/", "_",
	"*", "_",
	"?", "_",
	":", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// Sanitize replaces characters that are unsafe in file names with
// underscores.
func Sanitize(name string) string {
	return unsafeChars.Replace(name)
}

// Chapter/part numbering styles seen in playlist entry titles.
var chapterNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+)\s*[-–—]\s*`),   // "01 - title"
	regexp.MustCompile(`^(\d+)\.\s*`),         // "01. title"
	regexp.MustCompile(`^\[(\d+)\]`),          // "[01] title"
	regexp.MustCompile(`(?i)Part\s*(\d+)`),    // "Part 01"
	regexp.MustCompile(`(?i)Chapter\s*(\d+)`), // "Chapter 01"
	regexp.MustCompile(`#(\d+)`),              // "#01"
}

// ChapterPrefix extracts a chapter number from a title and returns it as a
// zero-padded "NN - " prefix, or "" when no numbering style matches.
func ChapterPrefix(name string) string {
	for _, re := range chapterNumberPatterns {
		if m := re.FindStringSubmatch(name); m != nil {
			return pad2(m[1]) + " - "
		}
	}
	return ""
}

// CleanPlaylistName strips the "NN - " playlist index a downloader prepends
// to an entry file name, re-attaching the chapter number in a uniform prefix
// when one can be recognized.
func CleanPlaylistName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	prefix := ChapterPrefix(base)

	if _, rest, found := strings.Cut(base, " - "); found {
		return prefix + strings.TrimSpace(rest) + ext
	}
	return base + ext
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
