// Package layout defines the persisted floor-plan document and the codec
// between it and the in-memory canvas model.
package layout

import (
	"time"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/geometry"
)

// Meta is the view metadata persisted alongside the nodes.
type Meta struct {
	PixelsPerMeter float64   `json:"pixelsPerMeter"`
	GridSpacingPx  float64   `json:"gridSpacingPx"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Node is the wire form of a canvas node. Kind discriminates which fields
// are meaningful.
type Node struct {
	ID          string             `json:"id"`
	Kind        canvas.Kind        `json:"kind"`
	Label       string             `json:"label,omitempty"`
	Points      []geometry.Point   `json:"points,omitempty"`
	StrokeColor string             `json:"strokeColor,omitempty"`
	FillColor   string             `json:"fillColor,omitempty"`
	X           float64            `json:"x"`
	Y           float64            `json:"y"`
	WidthPx     float64            `json:"widthPx,omitempty"`
	HeightPx    float64            `json:"heightPx,omitempty"`
	ColorTheme  string             `json:"colorTheme,omitempty"`
	FixtureType canvas.FixtureType `json:"fixtureType,omitempty"`
	RoomNumber  string             `json:"roomNumber,omitempty"`
	AreaSqM     float64            `json:"areaSqM,omitempty"`
}

// Edge is the wire form of a cosmetic connector.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Style  string `json:"style,omitempty"`
}

// Document is one floor's complete drawing: the unit of persistence. Saves
// always carry the full node and edge lists (replace semantics, not diffs).
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Meta  Meta   `json:"meta"`
}
