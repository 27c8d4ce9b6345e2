// Package chapters derives candidate segments for a video from platform
// chapter metadata, from free-text description scanning, or from manual
// timecode entry.
package chapters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tsimur87/YouTube-download-script-android/internal/domain/segments"
	"github.com/tsimur87/YouTube-download-script-android/internal/domain/timecode"
	"github.com/tsimur87/YouTube-download-script-android/internal/types"
)

// Matches "5:30", "05:30", "1:05:30" and the parenthesized variants, with
// 1-2 digit leading groups. The seconds group is mandatory.
var timestampRe = regexp.MustCompile(`\(?(\d{1,2}:?\d{1,2}:\d{2})\)?`)

// FromMetadata converts platform-reported chapters into segments with open
// ends, preserving source order.
func FromMetadata(chs []types.Chapter) []segments.Segment {
	if len(chs) == 0 {
		return nil
	}
	out := make([]segments.Segment, 0, len(chs))
	for _, c := range chs {
		out = append(out, segments.Segment{
			Start: timecode.FromSeconds(int(c.StartSeconds)),
			Name:  c.Title,
		})
	}
	return out
}

// FromDescription scans the description line by line for timestamp markers.
// This is a lossy, best-effort heuristic: only the first timestamp per line
// is considered, lines without one are skipped, and lines whose matched time
// does not parse are skipped without aborting the scan. The segment name is
// the line with the match removed and surrounding separators trimmed;
// nameless lines become "Part N", counting only emitted segments.
func FromDescription(desc string) []segments.Segment {
	if desc == "" {
		return nil
	}
	var out []segments.Segment
	counter := 1
	for _, line := range strings.Split(desc, "\n") {
		m := timestampRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		start, ok := timecode.Parse(m[1])
		if !ok {
			continue
		}
		name := strings.Replace(line, m[0], "", 1)
		name = strings.Trim(name, " \t:\n-–—")
		if name == "" {
			name = fmt.Sprintf("Part %d", counter)
		}
		out = append(out, segments.Segment{Start: start, Name: name})
		counter++
	}
	return out
}

// ParseManual interprets already-collected manual timecode input. A lone
// "start-end" range yields a single fully bounded segment; otherwise the
// input is a comma-separated list of start points with open ends. Tokens
// that fail to parse are dropped; input with nothing usable yields an empty
// list, which the caller treats as "no segments produced".
func ParseManual(input string) []segments.Segment {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	if strings.Count(input, "-") == 1 && !strings.Contains(input, ",") {
		from, to, _ := strings.Cut(input, "-")
		start, okS := timecode.Parse(from)
		end, okE := timecode.Parse(to)
		if okS && okE {
			return []segments.Segment{{
				Start: start,
				End:   end,
				Name:  fmt.Sprintf("Segment %s-%s", start, end),
			}}
		}
		// A half that does not parse falls through to point-list handling.
	}

	var out []segments.Segment
	for _, tok := range strings.Split(input, ",") {
		start, ok := timecode.Parse(tok)
		if !ok {
			continue
		}
		out = append(out, segments.Segment{
			Start: start,
			Name:  fmt.Sprintf("Part %02d", len(out)+1),
		})
	}
	return out
}
