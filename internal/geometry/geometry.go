package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned bounding box.
type Box struct {
	MinX   float64
	MinY   float64
	MaxX   float64
	MaxY   float64
	Width  float64
	Height float64
}

// RectPoints returns a rectangular outline anchored at the origin.
func RectPoints(w, h float64) []Point {
	return []Point{
		{0, 0},
		{w, 0},
		{w, h},
		{0, h},
	}
}

// LShapePoints returns an L-shaped outline whose bounding box is w x h.
// thickness is the arm width; callers must keep thickness <= min(w, h)
// or the polygon self-intersects.
func LShapePoints(w, h, thickness float64) []Point {
	return []Point{
		{0, 0},
		{thickness, 0},
		{thickness, h - thickness},
		{w, h - thickness},
		{w, h},
		{0, h},
	}
}

// UShapePoints returns a U-shaped outline whose bounding box is w x h.
// Same thickness precondition as LShapePoints.
func UShapePoints(w, h, thickness float64) []Point {
	return []Point{
		{0, 0},
		{thickness, 0},
		{thickness, h - thickness},
		{w - thickness, h - thickness},
		{w - thickness, 0},
		{w, 0},
		{w, h},
		{0, h},
	}
}

// TShapePoints returns a T-shaped outline whose bounding box is w x h.
// Same thickness precondition as LShapePoints.
func TShapePoints(w, h, thickness float64) []Point {
	return []Point{
		{0, 0},
		{w, 0},
		{w, thickness},
		{(w + thickness) / 2, thickness},
		{(w + thickness) / 2, h},
		{(w - thickness) / 2, h},
		{(w - thickness) / 2, thickness},
		{0, thickness},
	}
}

// Snap rounds value to the nearest multiple of gridSize. gridSize must be
// positive; callers reject zero before getting here.
func Snap(value, gridSize float64) float64 {
	return math.Round(value/gridSize) * gridSize
}

// BoundingBox computes the axis-aligned bounds of a point set. An empty set
// yields a zero-sized box at the origin.
func BoundingBox(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{
		MinX: points[0].X, MinY: points[0].Y,
		MaxX: points[0].X, MaxY: points[0].Y,
	}
	for _, p := range points[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	b.Width = b.MaxX - b.MinX
	b.Height = b.MaxY - b.MinY
	return b
}

// RescalePolygonToBox rescales every point relative to the polygon's own
// bounding box so the result spans newWidth x newHeight, keeping the top-left
// anchor and relative shape. A zero-width or zero-height input dimension is
// left unscaled on that axis.
func RescalePolygonToBox(points []Point, newWidth, newHeight float64) []Point {
	box := BoundingBox(points)
	sx, sy := 1.0, 1.0
	if box.Width > 0 {
		sx = newWidth / box.Width
	}
	if box.Height > 0 {
		sy = newHeight / box.Height
	}
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{
			X: box.MinX + (p.X-box.MinX)*sx,
			Y: box.MinY + (p.Y-box.MinY)*sy,
		}
	}
	return out
}

// PathData serializes a polygon into SVG path syntax: a moveto, linetos, and
// a closepath. Pure formatting; an empty polygon yields an empty string.
func PathData(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "M %s %s", trimFloat(points[0].X), trimFloat(points[0].Y))
	for _, p := range points[1:] {
		fmt.Fprintf(&sb, " L %s %s", trimFloat(p.X), trimFloat(p.Y))
	}
	sb.WriteString(" Z")
	return sb.String()
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
