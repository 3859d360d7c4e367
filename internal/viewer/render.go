package viewer

import (
	"fmt"
	"html"
	"strings"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/geometry"
	"floorplan-studio-backend/internal/layout"
)

// RenderSVG projects a layout document onto a static SVG: the same nodes the
// editor draws, with every drag, selection, and connection affordance gone.
func RenderSVG(doc layout.Document) string {
	var sb strings.Builder

	width, height := extent(doc)
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f">`, width, height)
	sb.WriteString("\n")

	// Documents persist buildings before fixtures, so paint order is free.
	for _, n := range doc.Nodes {
		switch n.Kind {
		case canvas.KindBuilding:
			fmt.Fprintf(&sb,
				`  <path d="%s" stroke="%s" fill="%s" stroke-width="2"/>`,
				geometry.PathData(n.Points), attr(n.StrokeColor), attr(n.FillColor))
		case canvas.KindBlock:
			fmt.Fprintf(&sb,
				`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" class="block %s"/>`,
				n.X, n.Y, n.WidthPx, n.HeightPx, attr(n.ColorTheme))
			sb.WriteString("\n")
			fmt.Fprintf(&sb,
				`  <text x="%.1f" y="%.1f" text-anchor="middle">%s</text>`,
				n.X+n.WidthPx/2, n.Y+n.HeightPx/2, html.EscapeString(n.Label))
		case canvas.KindSmall:
			fmt.Fprintf(&sb,
				`  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" class="glyph %s"/>`,
				n.X, n.Y, n.WidthPx, n.HeightPx, attr(string(n.FixtureType)))
			sb.WriteString("\n")
			fmt.Fprintf(&sb,
				`  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="10">%s</text>`,
				n.X+n.WidthPx/2, n.Y+n.HeightPx+12, html.EscapeString(n.Label))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func extent(doc layout.Document) (w, h float64) {
	var points []geometry.Point
	for _, n := range doc.Nodes {
		if n.Kind == canvas.KindBuilding {
			points = append(points, n.Points...)
			continue
		}
		points = append(points,
			geometry.Point{X: n.X, Y: n.Y},
			geometry.Point{X: n.X + n.WidthPx, Y: n.Y + n.HeightPx})
	}
	box := geometry.BoundingBox(points)
	// Pad a grid cell's worth so strokes at the edge stay visible.
	pad := doc.Meta.GridSpacingPx
	if pad <= 0 {
		pad = 20
	}
	return box.MaxX + pad, box.MaxY + pad
}

func attr(v string) string {
	return html.EscapeString(v)
}
