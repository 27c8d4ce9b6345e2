package chapters

import (
	"testing"

	"github.com/tsimur87/YouTube-download-script-android/internal/domain/segments"
	"github.com/tsimur87/YouTube-download-script-android/internal/types"
)

func TestFromMetadata(t *testing.T) {
	got := FromMetadata([]types.Chapter{
		{StartSeconds: 0, Title: "Intro"},
		{StartSeconds: 330, Title: "The Build"},
		{StartSeconds: 3661.9, Title: "Outro"},
	})
	want := []segments.Segment{
		{Start: "00:00:00", Name: "Intro"},
		{Start: "00:05:30", Name: "The Build"},
		{Start: "01:01:01", Name: "Outro"},
	}
	assertSegments(t, got, want)

	if FromMetadata(nil) != nil {
		t.Fatal("expected nil for empty metadata")
	}
}

func TestFromDescription(t *testing.T) {
	desc := "1. Intro\n05:30 - The Build\n12:00 Outro"
	got := FromDescription(desc)
	want := []segments.Segment{
		{Start: "00:05:30", Name: "The Build"},
		{Start: "00:12:00", Name: "Outro"},
	}
	assertSegments(t, got, want)
}

func TestFromDescription_ParenthesizedAndNameless(t *testing.T) {
	desc := "(00:00) welcome\n(10:15)\nchatter without any marker\n1:02:03 — unicode dash title"
	got := FromDescription(desc)
	want := []segments.Segment{
		{Start: "00:00:00", Name: "welcome"},
		{Start: "00:10:15", Name: "Part 2"},
		{Start: "01:02:03", Name: "unicode dash title"},
	}
	assertSegments(t, got, want)
}

func TestFromDescription_Adversarial(t *testing.T) {
	// Multiple timestamps on one line: only the first is used, the rest stay
	// in the name. A matched-but-unparsable time skips the line without
	// aborting the scan.
	desc := "05:30 intro vs 07:45 reprise\n99:99 broken\n08:00 – good"
	got := FromDescription(desc)
	want := []segments.Segment{
		{Start: "00:05:30", Name: "intro vs 07:45 reprise"},
		{Start: "00:08:00", Name: "good"},
	}
	assertSegments(t, got, want)
}

func TestFromDescription_Empty(t *testing.T) {
	if got := FromDescription(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := FromDescription("no markers here\nat all"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestParseManual_Range(t *testing.T) {
	got := ParseManual("5:30-10:45")
	if len(got) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(got))
	}
	seg := got[0]
	if seg.Start != "00:05:30" || seg.End != "00:10:45" {
		t.Fatalf("unexpected bounds: %s-%s", seg.Start, seg.End)
	}
	if seg.Name != "Segment 00:05:30-00:10:45" {
		t.Fatalf("unexpected name: %q", seg.Name)
	}
}

func TestParseManual_PointList(t *testing.T) {
	got := ParseManual("1:00,2:00,3:00")
	want := []segments.Segment{
		{Start: "00:01:00", Name: "Part 01"},
		{Start: "00:02:00", Name: "Part 02"},
		{Start: "00:03:00", Name: "Part 03"},
	}
	assertSegments(t, got, want)
	for _, seg := range got {
		if seg.Resolved() {
			t.Fatalf("point segment %q should have an open end", seg.Name)
		}
	}
}

func TestParseManual_BadRangeFallsThrough(t *testing.T) {
	// The broken half disqualifies range mode; the dash-joined token cannot
	// parse as a point either, so nothing survives.
	if got := ParseManual("5:30-garbage"); len(got) != 0 {
		t.Fatalf("expected no segments, got %v", got)
	}
}

func TestParseManual_DropsBadTokens(t *testing.T) {
	got := ParseManual("1:00,junk,3:00")
	want := []segments.Segment{
		{Start: "00:01:00", Name: "Part 01"},
		{Start: "00:03:00", Name: "Part 02"},
	}
	assertSegments(t, got, want)
}

func TestParseManual_Empty(t *testing.T) {
	if got := ParseManual("   "); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func assertSegments(t *testing.T, got, want []segments.Segment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d segments, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Start != want[i].Start || got[i].Name != want[i].Name {
			t.Errorf("segment %d = {%s %q}, want {%s %q}",
				i+1, got[i].Start, got[i].Name, want[i].Start, want[i].Name)
		}
	}
}
