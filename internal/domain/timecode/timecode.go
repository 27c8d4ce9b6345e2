// Package timecode converts human time text into canonical zero-padded
// HH:MM:SS timecodes.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeCode is a non-negative offset from the start of the media, always held
// in canonical zero-padded HH:MM:SS form. The zero value ("") means "not yet
// resolved".
type TimeCode string

// Zero is the start of the media.
const Zero TimeCode = "00:00:00"

// Parse accepts HH:MM:SS, MM:SS, or a bare integer number of seconds,
// dispatching on the colon count. ok is false for anything else; callers are
// expected to skip the offending token rather than abort.
func Parse(text string) (TimeCode, bool) {
	s := strings.TrimSpace(text)
	switch strings.Count(s, ":") {
	case 2:
		return parseParts(s)
	case 1:
		// Minute:second form; minutes above 59 are rejected, not carried.
		return parseParts("00:" + s)
	case 0:
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return "", false
		}
		return FromSeconds(n), true
	default:
		return "", false
	}
}

func parseParts(s string) (TimeCode, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return "", false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || len(p) > 2 && i > 0 {
			return "", false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return "", false
		}
		nums[i] = n
	}
	if nums[1] > 59 || nums[2] > 59 {
		return "", false
	}
	return TimeCode(fmt.Sprintf("%02d:%02d:%02d", nums[0], nums[1], nums[2])), true
}

// FromSeconds builds a canonical timecode from a whole number of seconds.
// Negative input clamps to zero.
func FromSeconds(sec int) TimeCode {
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := sec % 3600 / 60
	s := sec % 60
	return TimeCode(fmt.Sprintf("%02d:%02d:%02d", h, m, s))
}

// Seconds returns the total seconds represented by the timecode. Unresolved
// or malformed values count as zero.
func (t TimeCode) Seconds() int {
	parts := strings.Split(string(t), ":")
	if len(parts) != 3 {
		return 0
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// IsZero reports whether the timecode is unresolved (the empty string).
func (t TimeCode) IsZero() bool { return t == "" }

func (t TimeCode) String() string { return string(t) }
