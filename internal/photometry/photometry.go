// Package photometry computes per-region pixel statistics for slot
// analysis: grayscale histograms, Otsu thresholds, dark ratios, and
// averaged HSV color.
package photometry

import (
	"image"

	"phonebox-scanner/pkg/colorutil"
	"phonebox-scanner/pkg/geometry"
)

// SampleStride is the subsampling step in each axis. Every second pixel
// keeps per-cell sample counts large enough that the statistics do not
// shift measurably.
const SampleStride = 2

// RegionStats holds the accumulated statistics of one sampling region.
// A region with Total == 0 is a defined degenerate result: zero
// averages, dark ratio 0, and the default threshold.
type RegionStats struct {
	Histogram     [256]int
	Total         int
	AvgHue        float64  // 0-180
	AvgSaturation float64  // 0-1
	AvgValue      float64  // 0-1
	Threshold     int      // Otsu grayscale cut point
	DarkRatio     float64  // fraction of samples at or below Threshold
}

// AnalyzeRegion samples the region of the image at SampleStride in each
// axis and returns its statistics. The region is clipped to the image
// bounds first; a region fully outside them yields the degenerate
// zero-sample result.
func AnalyzeRegion(img image.Image, region geometry.RectInt) RegionStats {
	var stats RegionStats

	bounds := img.Bounds()
	clipped := region.Intersect(geometry.RectInt{
		X:      bounds.Min.X,
		Y:      bounds.Min.Y,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	})

	var sumH, sumS, sumV float64
	for y := clipped.Y; y < clipped.Bottom(); y += SampleStride {
		for x := clipped.X; x < clipped.Right(); x += SampleStride {
			r, g, b, _ := img.At(x, y).RGBA()
			// Convert from 16-bit to 8-bit
			r8 := float64(r >> 8)
			g8 := float64(g >> 8)
			b8 := float64(b >> 8)

			stats.Histogram[colorutil.Grayscale(r8, g8, b8)]++
			stats.Total++

			h, s, v := colorutil.RGBToHSV(r8, g8, b8)
			sumH += h
			sumS += s
			sumV += v
		}
	}

	stats.Threshold = OtsuThreshold(stats.Histogram, stats.Total)
	if stats.Total == 0 {
		return stats
	}

	dark := 0
	for g := 0; g <= stats.Threshold; g++ {
		dark += stats.Histogram[g]
	}
	stats.DarkRatio = float64(dark) / float64(stats.Total)

	n := float64(stats.Total)
	stats.AvgHue = sumH / n
	stats.AvgSaturation = sumS / n
	stats.AvgValue = sumV / n

	return stats
}
