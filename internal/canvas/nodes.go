package canvas

import (
	"github.com/google/uuid"

	"floorplan-studio-backend/internal/geometry"
)

type Kind string

const (
	KindBuilding Kind = "building"
	KindBlock    Kind = "block"
	KindSmall    Kind = "small"
)

// FixtureType identifies what a placed block or small glyph represents.
type FixtureType string

const (
	FixtureRoom     FixtureType = "room"
	FixtureCorridor FixtureType = "corridor"

	FixtureDoor         FixtureType = "door"
	FixtureStairs       FixtureType = "stairs"
	FixtureElevator     FixtureType = "elevator"
	FixtureExit         FixtureType = "exit"
	FixtureExtinguisher FixtureType = "extinguisher"
	FixtureClinic       FixtureType = "clinic"
)

// IsBlock reports whether the fixture type renders as a rectangular block
// rather than a small icon glyph.
func (f FixtureType) IsBlock() bool {
	return f == FixtureRoom || f == FixtureCorridor
}

// Valid reports whether f is one of the known fixture types.
func (f FixtureType) Valid() bool {
	switch f {
	case FixtureRoom, FixtureCorridor, FixtureDoor, FixtureStairs,
		FixtureElevator, FixtureExit, FixtureExtinguisher, FixtureClinic:
		return true
	}
	return false
}

// Node is the closed set of canvas node variants. Buildings render beneath
// fixtures; ListNodes returns them in that order.
type Node interface {
	NodeID() uuid.UUID
	NodeKind() Kind
}

// BuildingNode is the floor's outer wall outline. At most one exists per
// model; its anchor is the top-left of its polygon's bounding box.
type BuildingNode struct {
	ID          uuid.UUID
	Points      []geometry.Point
	StrokeColor string
	FillColor   string
}

func (n *BuildingNode) NodeID() uuid.UUID { return n.ID }
func (n *BuildingNode) NodeKind() Kind    { return KindBuilding }

// Position returns the top-left anchor of the outline's bounding box.
func (n *BuildingNode) Position() geometry.Point {
	box := geometry.BoundingBox(n.Points)
	return geometry.Point{X: box.MinX, Y: box.MinY}
}

// BlockNode is a rectangular fixture (room or corridor). RoomNumber is only
// meaningful for rooms; AreaSqM is display-only.
type BlockNode struct {
	ID          uuid.UUID
	Label       string
	Position    geometry.Point
	WidthPx     float64
	HeightPx    float64
	ColorTheme  string
	FixtureType FixtureType
	RoomNumber  string
	AreaSqM     float64
}

func (n *BlockNode) NodeID() uuid.UUID { return n.ID }
func (n *BlockNode) NodeKind() Kind    { return KindBlock }

// SmallNode is an icon-with-label glyph (door, stairs, elevator, ...).
type SmallNode struct {
	ID          uuid.UUID
	Label       string
	Position    geometry.Point
	WidthPx     float64
	HeightPx    float64
	ColorTheme  string
	FixtureType FixtureType
}

func (n *SmallNode) NodeID() uuid.UUID { return n.ID }
func (n *SmallNode) NodeKind() Kind    { return KindSmall }

// Edge is a purely cosmetic connector between two nodes.
type Edge struct {
	ID           uuid.UUID `json:"id"`
	SourceNodeID uuid.UUID `json:"source"`
	TargetNodeID uuid.UUID `json:"target"`
	Style        string    `json:"style,omitempty"`
}
