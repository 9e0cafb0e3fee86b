package render

import "math"

// RGB is a 24-bit color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Color maps a confidence score in [0,1] to a background color on the
// red-green axis: rgb(round(255*(1-c)), round(255*c), 0).
func Color(confidence float64) RGB {
	return RGB{
		R: uint8(math.Round(255 * (1 - confidence))),
		G: uint8(math.Round(255 * confidence)),
		B: 0,
	}
}

// TextColor returns the foreground color that contrasts with Color(c):
// white below the 0.5 threshold, black at or above it. The threshold is
// fixed, not configurable.
func TextColor(confidence float64) string {
	if confidence < 0.5 {
		return "white"
	}
	return "black"
}
