package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntEdges(t *testing.T) {
	r := NewRectInt(10, 20, 30, 40)
	assert.Equal(t, 40, r.Right())
	assert.Equal(t, 60, r.Bottom())
	assert.Equal(t, 1200, r.Area())
	assert.Equal(t, PointInt{X: 25, Y: 40}, r.Center())
	assert.False(t, r.Empty())
}

func TestRectIntEmpty(t *testing.T) {
	assert.True(t, RectInt{}.Empty())
	assert.True(t, RectInt{X: 5, Y: 5, Width: 0, Height: 10}.Empty())
	assert.Equal(t, 0, RectInt{Width: -3, Height: 10}.Area())
}

func TestRectIntContains(t *testing.T) {
	r := NewRectInt(0, 0, 10, 10)

	tests := []struct {
		name string
		p    PointInt
		want bool
	}{
		{"origin", PointInt{0, 0}, true},
		{"interior", PointInt{5, 5}, true},
		{"right edge exclusive", PointInt{10, 5}, false},
		{"bottom edge exclusive", PointInt{5, 10}, false},
		{"outside", PointInt{-1, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRectIntInset(t *testing.T) {
	r := NewRectInt(100, 100, 50, 100)

	got := r.Inset(6, 18, 6, 22)
	assert.Equal(t, RectInt{X: 106, Y: 118, Width: 38, Height: 60}, got)

	// Over-inset collapses to an empty rect at the center.
	collapsed := r.Inset(30, 10, 30, 10)
	assert.True(t, collapsed.Empty())
	assert.Equal(t, r.Center().X, collapsed.X)
}

func TestRectIntIntersect(t *testing.T) {
	a := NewRectInt(0, 0, 10, 10)
	b := NewRectInt(5, 5, 10, 10)
	assert.Equal(t, RectInt{X: 5, Y: 5, Width: 5, Height: 5}, a.Intersect(b))
	assert.True(t, a.Intersects(b))

	c := NewRectInt(20, 20, 5, 5)
	assert.True(t, a.Intersect(c).Empty())
	assert.False(t, a.Intersects(c))
}

func TestRectIntUnion(t *testing.T) {
	a := NewRectInt(0, 0, 10, 10)
	b := NewRectInt(20, 5, 10, 10)
	assert.Equal(t, RectInt{X: 0, Y: 0, Width: 30, Height: 15}, a.Union(b))
	assert.Equal(t, a, a.Union(RectInt{}))
	assert.Equal(t, a, RectInt{}.Union(a))
}
