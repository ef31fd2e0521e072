package app

import "confetti/internal/palette"

// nextEmotion cycles through the builtin palettes in name order. Unknown
// names restart at the default emotion.
func nextEmotion(current string) string {
	names := palette.Names()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return palette.DefaultEmotion
}
