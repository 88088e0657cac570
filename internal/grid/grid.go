// Package grid maps a calibrated crop of a box photograph onto per-slot
// pixel rectangles.
package grid

import (
	"fmt"
	"math"

	"phonebox-scanner/pkg/geometry"
)

// CropPercent describes the box region inside a photograph as percentages
// of the image dimensions, measured from the top-left corner.
type CropPercent struct {
	Top    float64 `json:"top" koanf:"top"`       // 0-100, percent of image height
	Left   float64 `json:"left" koanf:"left"`     // 0-100, percent of image width
	Right  float64 `json:"right" koanf:"right"`   // 0-100, percent of image width
	Bottom float64 `json:"bottom" koanf:"bottom"` // 0-100, percent of image height
}

// Validate checks that the crop percentages describe a usable region.
func (c CropPercent) Validate() error {
	for _, v := range []float64{c.Top, c.Left, c.Right, c.Bottom} {
		if v < 0 || v > 100 {
			return fmt.Errorf("crop percentages must be in [0,100], got %.2f", v)
		}
	}
	if c.Top >= c.Bottom {
		return fmt.Errorf("crop top (%.2f) must be above bottom (%.2f)", c.Top, c.Bottom)
	}
	if c.Left >= c.Right {
		return fmt.Errorf("crop left (%.2f) must be left of right (%.2f)", c.Left, c.Right)
	}
	return nil
}

// CellSample is the pixel footprint of one grid position: the full slot
// rectangle and the inset sampling rectangle used for analysis.
type CellSample struct {
	Slot  int              // 1-based, row-major
	Row   int              // 0-based
	Col   int              // 0-based
	Outer geometry.RectInt // full slot rectangle
	Inner geometry.RectInt // inset sampling rectangle
}

// Sampling rectangle insets as fractions of the cell size. The sides
// stay narrow; the bottom inset exceeds the top to skip the slot label
// strip glued under each compartment.
const (
	insetSideFrac   = 0.12
	insetTopFrac    = 0.18
	insetBottomFrac = 0.22

	// minSampleSize keeps the sampling rectangle from collapsing for
	// very small cells.
	minSampleSize = 4
)

// Map converts image dimensions, a crop rectangle and a grid shape into
// one CellSample per slot, ordered by slot index. Cell sizes are the
// floor division of the crop box by the grid shape; the few remainder
// pixels drift into the right/bottom margin rather than being
// redistributed.
func Map(imgW, imgH int, crop CropPercent, rows, cols int) ([]CellSample, error) {
	if imgW < 1 || imgH < 1 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", imgW, imgH)
	}
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("grid must have at least one row and column, got %dx%d", rows, cols)
	}
	if err := crop.Validate(); err != nil {
		return nil, err
	}

	left := roundPercent(crop.Left, imgW)
	right := roundPercent(crop.Right, imgW)
	top := roundPercent(crop.Top, imgH)
	bottom := roundPercent(crop.Bottom, imgH)

	cellW := (right - left) / cols
	cellH := (bottom - top) / rows

	cells := make([]CellSample, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			outer := geometry.RectInt{
				X:      left + col*cellW,
				Y:      top + row*cellH,
				Width:  cellW,
				Height: cellH,
			}
			cells = append(cells, CellSample{
				Slot:  row*cols + col + 1,
				Row:   row,
				Col:   col,
				Outer: outer,
				Inner: sampleRect(outer),
			})
		}
	}

	return cells, nil
}

// sampleRect insets a cell rectangle by the fixed margins, falling back
// to a centered minimum-size rectangle when the cell is too small.
func sampleRect(outer geometry.RectInt) geometry.RectInt {
	side := int(insetSideFrac * float64(outer.Width))
	top := int(insetTopFrac * float64(outer.Height))
	bottom := int(insetBottomFrac * float64(outer.Height))

	inner := outer.Inset(side, top, side, bottom)
	if inner.Width < minSampleSize || inner.Height < minSampleSize {
		c := outer.Center()
		return geometry.RectInt{
			X:      c.X - minSampleSize/2,
			Y:      c.Y - minSampleSize/2,
			Width:  minSampleSize,
			Height: minSampleSize,
		}
	}
	return inner
}

// roundPercent converts a percentage of a dimension to the nearest pixel.
func roundPercent(pct float64, dim int) int {
	return int(math.Round(pct / 100.0 * float64(dim)))
}
