// Package segments models named time slices of a media file and the rules
// for filling in their missing end times.
package segments

import (
	"strconv"
	"strings"

	"github.com/tsimur87/YouTube-download-script-android/internal/domain/timecode"
)

// Segment is a named slice of the source media. End stays unresolved (the
// zero TimeCode) until the set is resolved against the total duration.
type Segment struct {
	Start timecode.TimeCode
	End   timecode.TimeCode
	Name  string
}

// Resolved reports whether the segment has a concrete end time.
func (s Segment) Resolved() bool { return !s.End.IsZero() }

// Set is an ordered segment list pending resolution. Selection must happen
// before resolution because a missing end time is taken from the next
// neighbor in the final order; the builder shape makes that sequencing the
// only one the API allows.
type Set struct {
	segs []Segment
}

// NewSet copies segs into a fresh set.
func NewSet(segs []Segment) Set {
	out := make([]Segment, len(segs))
	copy(out, segs)
	return Set{segs: out}
}

// Len returns the number of segments in the set.
func (s Set) Len() int { return len(s.segs) }

// Select narrows the set to the 1-based indices named by expr. An empty or
// entirely invalid expression keeps the full set.
func (s Set) Select(expr string) Set {
	idx := ParseSelection(expr, len(s.segs))
	if len(idx) == 0 {
		return s
	}
	out := make([]Segment, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.segs[i-1])
	}
	return Set{segs: out}
}

// Resolve finalizes the set: every unresolved end time becomes the next
// segment's start, and the last one becomes the total duration. Already
// resolved segments pass through untouched, so resolving twice is a no-op.
// Ordering is trusted; a segment whose end does not exceed its start is left
// for the splitter to reject individually.
func (s Set) Resolve(total timecode.TimeCode) []Segment {
	out := make([]Segment, len(s.segs))
	copy(out, s.segs)
	for i := range out {
		if out[i].Resolved() {
			continue
		}
		if i+1 < len(out) {
			out[i].End = out[i+1].Start
		} else {
			out[i].End = total
		}
	}
	return out
}

// ParseSelection parses a "1-5,9" style expression into a sorted, unique
// list of 1-based indices within [1, total]. Range tokens are accepted only
// when fully in bounds with a <= b; anything malformed or out of range is
// dropped silently. An expression with no usable token yields nil, which
// callers treat as "use the full list".
func ParseSelection(expr string, total int) []int {
	if total <= 0 {
		return nil
	}
	picked := make(map[int]bool)
	for _, tok := range strings.Split(expr, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if strings.Contains(tok, "-") {
			parts := strings.Split(tok, "-")
			if len(parts) != 2 {
				continue
			}
			a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
			b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
			if errA != nil || errB != nil {
				continue
			}
			if a < 1 || a > total || b < 1 || b > total || a > b {
				continue
			}
			for i := a; i <= b; i++ {
				picked[i] = true
			}
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > total {
			continue
		}
		picked[n] = true
	}
	if len(picked) == 0 {
		return nil
	}
	out := make([]int, 0, len(picked))
	for i := 1; i <= total; i++ {
		if picked[i] {
			out = append(out, i)
		}
	}
	return out
}
