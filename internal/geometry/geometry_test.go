package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetBoundingBoxes(t *testing.T) {
	cases := []struct {
		name   string
		points []Point
		w, h   float64
	}{
		{"rect", RectPoints(1280, 800), 1280, 800},
		{"l-shape", LShapePoints(1280, 800, 128), 1280, 800},
		{"u-shape", UShapePoints(1280, 800, 128), 1280, 800},
		{"t-shape", TShapePoints(1280, 800, 128), 1280, 800},
		{"rect small", RectPoints(3, 7), 3, 7},
		{"l-shape thin arm", LShapePoints(400, 300, 16), 400, 300},
		{"u-shape thin arm", UShapePoints(400, 300, 16), 400, 300},
		{"t-shape thin arm", TShapePoints(400, 300, 16), 400, 300},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			box := BoundingBox(tc.points)
			assert.Equal(t, 0.0, box.MinX)
			assert.Equal(t, 0.0, box.MinY)
			assert.Equal(t, tc.w, box.Width)
			assert.Equal(t, tc.h, box.Height)
			require.GreaterOrEqual(t, len(tc.points), 3)
		})
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	box := BoundingBox(nil)
	assert.Equal(t, Box{}, box)
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 40.0, Snap(43, 20))
	assert.Equal(t, 60.0, Snap(50, 20))
	assert.Equal(t, -20.0, Snap(-27, 20))
	assert.Equal(t, 0.0, Snap(9, 20))
}

func TestSnapIdempotent(t *testing.T) {
	grids := []float64{1, 5, 16, 20, 32.5}
	values := []float64{-311.7, -20, 0, 0.4, 13, 99.999, 12345.6}
	for _, g := range grids {
		for _, v := range values {
			once := Snap(v, g)
			assert.Equal(t, once, Snap(once, g), "snap(%v, %v)", v, g)
		}
	}
}

func TestRescalePolygonToBox(t *testing.T) {
	points := LShapePoints(1280, 800, 128)
	scaled := RescalePolygonToBox(points, 640, 1600)
	box := BoundingBox(scaled)
	assert.InDelta(t, 640, box.Width, 1e-9)
	assert.InDelta(t, 1600, box.Height, 1e-9)

	// Shape is preserved: the arm stays proportional.
	assert.InDelta(t, 64, scaled[1].X, 1e-9)
	assert.InDelta(t, 1344, scaled[2].Y, 1e-9)
}

func TestRescalePolygonKeepsAnchor(t *testing.T) {
	points := []Point{{100, 200}, {300, 200}, {300, 400}, {100, 400}}
	scaled := RescalePolygonToBox(points, 50, 50)
	box := BoundingBox(scaled)
	assert.Equal(t, 100.0, box.MinX)
	assert.Equal(t, 200.0, box.MinY)
	assert.InDelta(t, 50, box.Width, 1e-9)
	assert.InDelta(t, 50, box.Height, 1e-9)
}

func TestRescaleDegenerateAxis(t *testing.T) {
	// Zero-width input stays put on x rather than dividing by zero.
	points := []Point{{10, 0}, {10, 100}, {10, 50}}
	scaled := RescalePolygonToBox(points, 500, 200)
	for _, p := range scaled {
		assert.Equal(t, 10.0, p.X)
	}
	assert.InDelta(t, 200, BoundingBox(scaled).Height, 1e-9)
}

func TestPathData(t *testing.T) {
	assert.Equal(t, "M 0 0 L 10 0 L 10 5 L 0 5 Z", PathData(RectPoints(10, 5)))
	assert.Equal(t, "", PathData(nil))
	assert.Equal(t, "M 1.5 2.25 Z", PathData([]Point{{1.5, 2.25}}))
}
