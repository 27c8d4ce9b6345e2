// Package audio holds the MP3 bitrate ladder used when converting
// downloaded audio.
package audio

// Bitrates is the selectable MP3 bitrate ladder in kbps, best first.
var Bitrates = []int{320, 256, 192, 128, 96, 64, 32, 16}

// BestBitrate picks the highest ladder entry that does not exceed the
// source's average audio bitrate. Unknown or zero source rates get the top
// of the ladder; a source below the whole ladder gets the bottom.
func BestBitrate(sourceKbps float64) int {
	if sourceKbps <= 0 {
		return Bitrates[0]
	}
	for _, b := range Bitrates {
		if sourceKbps >= float64(b) {
			return b
		}
	}
	return Bitrates[len(Bitrates)-1]
}
