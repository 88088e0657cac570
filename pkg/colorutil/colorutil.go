// Package colorutil provides shared color conversions for the scanner.
package colorutil

import (
	"math"
)

// RGBToHSV converts RGB channels (0-255) to HSV with hue on the halved
// 0-180 scale used by 8-bit hue encodings; saturation and value are
// normalized to [0,1].
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC

	if maxC == 0 {
		s = 0
	} else {
		s = diff / maxC
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // halve to the 0-180 range

	return h, s, v
}

// Grayscale converts RGB channels (0-255) to a BT.601 luma bucket in
// [0,255], rounded to the nearest integer.
func Grayscale(r, g, b float64) int {
	gray := int(math.Round(0.299*r + 0.587*g + 0.114*b))
	if gray < 0 {
		gray = 0
	}
	if gray > 255 {
		gray = 255
	}
	return gray
}
