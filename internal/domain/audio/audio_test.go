package audio

import "testing"

func TestBestBitrate(t *testing.T) {
	cases := map[float64]int{
		0:     320,
		-1:    320,
		400:   320,
		320:   320,
		200:   192,
		129.5: 128,
		20:    16,
		5:     16,
	}
	for in, want := range cases {
		if got := BestBitrate(in); got != want {
			t.Errorf("BestBitrate(%v) = %d, want %d", in, got, want)
		}
	}
}
