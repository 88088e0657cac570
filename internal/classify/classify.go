// Package classify turns per-cell photometric statistics into presence
// decisions, confidence scores, and coarse color labels.
package classify

import (
	"phonebox-scanner/internal/photometry"
)

// Color labels produced by the classifier. Baseline records and import
// payloads are validated against this enumeration.
const (
	ColorUnknown     = "unknown"
	ColorBlack       = "black"
	ColorGray        = "gray"
	ColorRed         = "red"
	ColorOrangeBrown = "orange/brown"
	ColorYellowGold  = "yellow/gold"
	ColorGreen       = "green"
	ColorBlue        = "blue"
	ColorPurple      = "purple"
)

// Labels returns every color label the classifier can produce.
func Labels() []string {
	return []string{
		ColorUnknown,
		ColorBlack,
		ColorGray,
		ColorRed,
		ColorOrangeBrown,
		ColorYellowGold,
		ColorGreen,
		ColorBlue,
		ColorPurple,
	}
}

// ValidLabel reports whether label belongs to the classifier's
// enumeration.
func ValidLabel(label string) bool {
	for _, l := range Labels() {
		if l == label {
			return true
		}
	}
	return false
}

// Thresholds configures the presence decision.
type Thresholds struct {
	MinDarkRatio  float64 `json:"min_dark_ratio" koanf:"min_dark_ratio"`
	MinSaturation float64 `json:"min_saturation" koanf:"min_saturation"`
}

// DefaultThresholds returns the calibrated presence thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{MinDarkRatio: 0.40, MinSaturation: 0.20}
}

// Detection is the classification outcome for one slot.
type Detection struct {
	Slot       int     `json:"slot"`
	Identifier string  `json:"identifier"`
	Present    bool    `json:"present"`
	DarkRatio  float64 `json:"darkRatio"`
	Saturation float64 `json:"saturation"`
	Confidence float64 `json:"confidence"`
	Color      string  `json:"color"`
}

// Classify converts region statistics into a detection. The caller
// fills Slot and Identifier. A phone reads as present when it is either
// dark enough or saturated enough; the two signals cover dark devices
// and vividly colored cases respectively.
func Classify(stats photometry.RegionStats, th Thresholds) Detection {
	det := Detection{
		DarkRatio:  stats.DarkRatio,
		Saturation: stats.AvgSaturation,
		Color:      ColorLabel(stats),
	}

	if stats.Total == 0 {
		return det
	}

	det.Present = stats.DarkRatio >= th.MinDarkRatio || stats.AvgSaturation >= th.MinSaturation
	det.Confidence = confidence(stats.DarkRatio, stats.AvgSaturation, th)

	return det
}

// confidence blends how far each signal sits above its threshold,
// weighted 60/40 toward darkness, capped at 1. It is a relative
// strength indicator, not a probability.
func confidence(darkRatio, saturation float64, th Thresholds) float64 {
	score := 0.0
	if th.MinDarkRatio > 0 {
		score += 0.6 * (darkRatio / th.MinDarkRatio)
	}
	if th.MinSaturation > 0 {
		score += 0.4 * (saturation / th.MinSaturation)
	}
	return clamp01(score)
}

// ColorLabel buckets averaged HSV into the coarse label set. The
// boundary values are load-bearing for downstream expected-color
// comparisons and stay fixed.
func ColorLabel(stats photometry.RegionStats) string {
	if stats.Total == 0 {
		return ColorUnknown
	}

	h := stats.AvgHue
	s8 := stats.AvgSaturation * 255
	v8 := stats.AvgValue * 255

	switch {
	case s8 < 60 && v8 < 60:
		return ColorBlack
	case s8 < 60:
		return ColorGray
	case h < 10 || h >= 160: // red wraps both ends of the hue scale
		return ColorRed
	case h < 22:
		return ColorOrangeBrown
	case h < 35:
		return ColorYellowGold
	case h < 85:
		return ColorGreen
	case h < 130:
		return ColorBlue
	default:
		return ColorPurple
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
