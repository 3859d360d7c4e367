package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"floorplan-studio-backend/internal/geometry"
)

var ErrNodeNotFound = errors.New("node not found")

// Model holds the authoritative nodes and edges of the floor currently open.
// The building outline lives in a dedicated slot so the single-building rule
// cannot be violated by construction. The model does no rendering.
type Model struct {
	building *BuildingNode
	fixtures []Node
	edges    []Edge
}

func NewModel() *Model {
	return &Model{}
}

// Restore rebuilds a model from previously persisted nodes and edges,
// preserving node identities. A later building in the list replaces an
// earlier one, matching the single-outline rule.
func Restore(nodes []Node, edges []Edge) *Model {
	m := NewModel()
	for _, n := range nodes {
		if b, ok := n.(*BuildingNode); ok {
			m.building = b
			continue
		}
		m.fixtures = append(m.fixtures, n)
	}
	m.SetEdges(edges)
	return m
}

// GeometryPatch describes a partial geometry update. Nil fields are left
// untouched. Points applies to buildings only; the rest to fixtures.
type GeometryPatch struct {
	Points   []geometry.Point
	Position *geometry.Point
	WidthPx  *float64
	HeightPx *float64
	AreaSqM  *float64
}

// ReplaceBuilding installs a new outline, discarding any previous one. The
// model only ever references the most recently inserted outline.
func (m *Model) ReplaceBuilding(points []geometry.Point, stroke, fill string) *BuildingNode {
	b := &BuildingNode{
		ID:          uuid.New(),
		Points:      points,
		StrokeColor: stroke,
		FillColor:   fill,
	}
	if m.building != nil {
		m.dropEdgesFor(m.building.ID)
	}
	m.building = b
	return b
}

// Building returns the current outline, or nil when none has been placed.
func (m *Model) Building() *BuildingNode {
	return m.building
}

// AddFixture places a block or small node depending on the fixture type.
func (m *Model) AddFixture(fixtureType FixtureType, pos geometry.Point, widthPx, heightPx float64, label string) (Node, error) {
	if !fixtureType.Valid() {
		return nil, fmt.Errorf("unknown fixture type %q", fixtureType)
	}
	var node Node
	if fixtureType.IsBlock() {
		node = &BlockNode{
			ID:          uuid.New(),
			Label:       label,
			Position:    pos,
			WidthPx:     widthPx,
			HeightPx:    heightPx,
			ColorTheme:  defaultTheme(fixtureType),
			FixtureType: fixtureType,
		}
	} else {
		node = &SmallNode{
			ID:          uuid.New(),
			Label:       label,
			Position:    pos,
			WidthPx:     widthPx,
			HeightPx:    heightPx,
			ColorTheme:  defaultTheme(fixtureType),
			FixtureType: fixtureType,
		}
	}
	m.fixtures = append(m.fixtures, node)
	return node, nil
}

// UpdateNodeLabel sets the visible label of a fixture. Buildings carry no
// label.
func (m *Model) UpdateNodeLabel(id uuid.UUID, text string) error {
	node, ok := m.FindNode(id)
	if !ok {
		return ErrNodeNotFound
	}
	switch n := node.(type) {
	case *BlockNode:
		n.Label = text
	case *SmallNode:
		n.Label = text
	default:
		return fmt.Errorf("node %s does not carry a label", id)
	}
	return nil
}

// UpdateRoomNumber stores the room identifier of a room block. Only blocks of
// fixture type room accept one.
func (m *Model) UpdateRoomNumber(id uuid.UUID, roomNumber string) error {
	node, ok := m.FindNode(id)
	if !ok {
		return ErrNodeNotFound
	}
	block, isBlock := node.(*BlockNode)
	if !isBlock || block.FixtureType != FixtureRoom {
		return fmt.Errorf("node %s is not a room", id)
	}
	block.RoomNumber = strings.TrimSpace(roomNumber)
	return nil
}

// UpdateNodeGeometry applies a partial geometry patch to a node.
func (m *Model) UpdateNodeGeometry(id uuid.UUID, patch GeometryPatch) error {
	node, ok := m.FindNode(id)
	if !ok {
		return ErrNodeNotFound
	}
	switch n := node.(type) {
	case *BuildingNode:
		if patch.Points != nil {
			n.Points = patch.Points
		}
	case *BlockNode:
		if patch.Position != nil {
			n.Position = *patch.Position
		}
		if patch.WidthPx != nil {
			n.WidthPx = *patch.WidthPx
		}
		if patch.HeightPx != nil {
			n.HeightPx = *patch.HeightPx
		}
		if patch.AreaSqM != nil {
			n.AreaSqM = *patch.AreaSqM
		}
	case *SmallNode:
		if patch.Position != nil {
			n.Position = *patch.Position
		}
		if patch.WidthPx != nil {
			n.WidthPx = *patch.WidthPx
		}
		if patch.HeightPx != nil {
			n.HeightPx = *patch.HeightPx
		}
	}
	return nil
}

// RemoveNode deletes a node and any edges touching it.
func (m *Model) RemoveNode(id uuid.UUID) error {
	if m.building != nil && m.building.ID == id {
		m.building = nil
		m.dropEdgesFor(id)
		return nil
	}
	for i, n := range m.fixtures {
		if n.NodeID() == id {
			m.fixtures = append(m.fixtures[:i], m.fixtures[i+1:]...)
			m.dropEdgesFor(id)
			return nil
		}
	}
	return ErrNodeNotFound
}

// FindNode looks a node up by id, building included.
func (m *Model) FindNode(id uuid.UUID) (Node, bool) {
	if m.building != nil && m.building.ID == id {
		return m.building, true
	}
	for _, n := range m.fixtures {
		if n.NodeID() == id {
			return n, true
		}
	}
	return nil, false
}

// ListNodes returns all nodes in render order: the building outline first,
// then fixtures in insertion order.
func (m *Model) ListNodes() []Node {
	nodes := make([]Node, 0, len(m.fixtures)+1)
	if m.building != nil {
		nodes = append(nodes, m.building)
	}
	return append(nodes, m.fixtures...)
}

// AddEdge connects two existing nodes with a cosmetic edge.
func (m *Model) AddEdge(source, target uuid.UUID, style string) (Edge, error) {
	if _, ok := m.FindNode(source); !ok {
		return Edge{}, fmt.Errorf("edge source: %w", ErrNodeNotFound)
	}
	if _, ok := m.FindNode(target); !ok {
		return Edge{}, fmt.Errorf("edge target: %w", ErrNodeNotFound)
	}
	edge := Edge{ID: uuid.New(), SourceNodeID: source, TargetNodeID: target, Style: style}
	m.edges = append(m.edges, edge)
	return edge, nil
}

// SetEdges replaces the edge list wholesale, used when loading a document.
func (m *Model) SetEdges(edges []Edge) {
	m.edges = append([]Edge(nil), edges...)
}

func (m *Model) Edges() []Edge {
	return append([]Edge(nil), m.edges...)
}

func (m *Model) dropEdgesFor(id uuid.UUID) {
	kept := m.edges[:0]
	for _, e := range m.edges {
		if e.SourceNodeID != id && e.TargetNodeID != id {
			kept = append(kept, e)
		}
	}
	m.edges = kept
}

func defaultTheme(f FixtureType) string {
	switch f {
	case FixtureRoom:
		return "blue"
	case FixtureCorridor:
		return "gray"
	case FixtureExit, FixtureExtinguisher:
		return "red"
	case FixtureClinic:
		return "green"
	default:
		return "slate"
	}
}
