package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebox-scanner/pkg/geometry"
)

func TestMapCropBox(t *testing.T) {
	// 5x12 grid on a 1000x800 photo with the standard calibration.
	crop := CropPercent{Top: 9, Left: 19, Right: 83, Bottom: 92}
	cells, err := Map(1000, 800, crop, 5, 12)
	require.NoError(t, err)
	require.Len(t, cells, 60)

	first := cells[0]
	assert.Equal(t, 1, first.Slot)
	assert.Equal(t, geometry.RectInt{X: 190, Y: 72, Width: 53, Height: 132}, first.Outer)

	// Slot 37 sits at row 3, column 0.
	cell := cells[36]
	assert.Equal(t, 37, cell.Slot)
	assert.Equal(t, 3, cell.Row)
	assert.Equal(t, 0, cell.Col)
	assert.Equal(t, 190, cell.Outer.X)
	assert.Equal(t, 72+3*132, cell.Outer.Y)
}

func TestMapTilesWithoutOverlap(t *testing.T) {
	crop := CropPercent{Top: 9, Left: 19, Right: 83, Bottom: 92}
	rows, cols := 5, 12
	cells, err := Map(1000, 800, crop, rows, cols)
	require.NoError(t, err)

	// Slot indices are exactly 1..rows*cols with no gaps.
	seen := make(map[int]bool)
	for _, c := range cells {
		assert.False(t, seen[c.Slot], "duplicate slot %d", c.Slot)
		seen[c.Slot] = true
		assert.Equal(t, c.Row*cols+c.Col+1, c.Slot)
	}
	assert.Len(t, seen, rows*cols)

	// Outer rectangles tile the cell area: no overlaps, and the union
	// covers cols*cellW x rows*cellH starting at the crop origin.
	for i, a := range cells {
		for _, b := range cells[i+1:] {
			assert.False(t, a.Outer.Intersects(b.Outer),
				"slot %d overlaps slot %d", a.Slot, b.Slot)
		}
	}

	union := geometry.RectInt{}
	area := 0
	for _, c := range cells {
		union = union.Union(c.Outer)
		area += c.Outer.Area()
	}
	assert.Equal(t, geometry.RectInt{X: 190, Y: 72, Width: 12 * 53, Height: 5 * 132}, union)
	assert.Equal(t, union.Area(), area)
}

func TestMapInnerInsets(t *testing.T) {
	crop := CropPercent{Top: 9, Left: 19, Right: 83, Bottom: 92}
	cells, err := Map(1000, 800, crop, 5, 12)
	require.NoError(t, err)

	// cellW=53, cellH=132: side inset 6, top 23, bottom 29.
	inner := cells[0].Inner
	assert.Equal(t, geometry.RectInt{X: 196, Y: 95, Width: 41, Height: 80}, inner)

	// Inner rectangles stay inside their outer cell.
	for _, c := range cells {
		assert.Equal(t, c.Inner, c.Inner.Intersect(c.Outer), "slot %d", c.Slot)
	}
}

func TestMapTinyCellsClampSamplingRect(t *testing.T) {
	// 20x20 crop over a 10x2 grid gives 2x10 cells, under the minimum.
	cells, err := Map(100, 100, CropPercent{Top: 0, Left: 0, Right: 20, Bottom: 20}, 2, 10)
	require.NoError(t, err)
	for _, c := range cells {
		assert.Equal(t, minSampleSize, c.Inner.Width)
		assert.Equal(t, minSampleSize, c.Inner.Height)
	}
}

func TestMapValidation(t *testing.T) {
	valid := CropPercent{Top: 10, Left: 10, Right: 90, Bottom: 90}

	tests := []struct {
		name string
		w, h int
		crop CropPercent
		rows int
		cols int
	}{
		{"zero width", 0, 100, valid, 2, 2},
		{"zero rows", 100, 100, valid, 0, 2},
		{"zero cols", 100, 100, valid, 2, 0},
		{"top below bottom", 100, 100, CropPercent{Top: 90, Left: 10, Right: 90, Bottom: 10}, 2, 2},
		{"left right inverted", 100, 100, CropPercent{Top: 10, Left: 90, Right: 10, Bottom: 90}, 2, 2},
		{"percent out of range", 100, 100, CropPercent{Top: -5, Left: 10, Right: 90, Bottom: 90}, 2, 2},
		{"percent above 100", 100, 100, CropPercent{Top: 10, Left: 10, Right: 101, Bottom: 90}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Map(tt.w, tt.h, tt.crop, tt.rows, tt.cols)
			assert.Error(t, err)
		})
	}
}

func TestCropPercentValidate(t *testing.T) {
	assert.NoError(t, CropPercent{Top: 9, Left: 19, Right: 83, Bottom: 92}.Validate())
	assert.Error(t, CropPercent{Top: 50, Left: 10, Right: 90, Bottom: 50}.Validate())
}
