package layout

import (
	"fmt"

	"github.com/google/uuid"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/geometry"
)

// Encode serializes the model plus view metadata into a document. The caller
// stamps Meta.UpdatedAt; Encode copies everything else as-is.
func Encode(m *canvas.Model, meta Meta) Document {
	nodes := m.ListNodes()
	doc := Document{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0, len(m.Edges())),
		Meta:  meta,
	}
	for _, n := range nodes {
		doc.Nodes = append(doc.Nodes, encodeNode(n))
	}
	for _, e := range m.Edges() {
		doc.Edges = append(doc.Edges, Edge{
			ID:     e.ID.String(),
			Source: e.SourceNodeID.String(),
			Target: e.TargetNodeID.String(),
			Style:  e.Style,
		})
	}
	return doc
}

func encodeNode(n canvas.Node) Node {
	switch node := n.(type) {
	case *canvas.BuildingNode:
		anchor := node.Position()
		return Node{
			ID:          node.ID.String(),
			Kind:        canvas.KindBuilding,
			Points:      node.Points,
			StrokeColor: node.StrokeColor,
			FillColor:   node.FillColor,
			X:           anchor.X,
			Y:           anchor.Y,
		}
	case *canvas.BlockNode:
		return Node{
			ID:          node.ID.String(),
			Kind:        canvas.KindBlock,
			Label:       node.Label,
			X:           node.Position.X,
			Y:           node.Position.Y,
			WidthPx:     node.WidthPx,
			HeightPx:    node.HeightPx,
			ColorTheme:  node.ColorTheme,
			FixtureType: node.FixtureType,
			RoomNumber:  node.RoomNumber,
			AreaSqM:     node.AreaSqM,
		}
	case *canvas.SmallNode:
		return Node{
			ID:          node.ID.String(),
			Kind:        canvas.KindSmall,
			Label:       node.Label,
			X:           node.Position.X,
			Y:           node.Position.Y,
			WidthPx:     node.WidthPx,
			HeightPx:    node.HeightPx,
			ColorTheme:  node.ColorTheme,
			FixtureType: node.FixtureType,
		}
	}
	return Node{}
}

// Decode rebuilds a canvas model and metadata from a document, preserving
// node identities. It never mutates the document it receives.
func Decode(doc Document) (*canvas.Model, Meta, error) {
	nodes := make([]canvas.Node, 0, len(doc.Nodes))
	for _, wire := range doc.Nodes {
		node, err := decodeNode(wire)
		if err != nil {
			return nil, Meta{}, err
		}
		nodes = append(nodes, node)
	}
	edges := make([]canvas.Edge, 0, len(doc.Edges))
	for _, wire := range doc.Edges {
		id, err := uuid.Parse(wire.ID)
		if err != nil {
			return nil, Meta{}, fmt.Errorf("edge id %q: %w", wire.ID, err)
		}
		source, err := uuid.Parse(wire.Source)
		if err != nil {
			return nil, Meta{}, fmt.Errorf("edge source %q: %w", wire.Source, err)
		}
		target, err := uuid.Parse(wire.Target)
		if err != nil {
			return nil, Meta{}, fmt.Errorf("edge target %q: %w", wire.Target, err)
		}
		edges = append(edges, canvas.Edge{
			ID:           id,
			SourceNodeID: source,
			TargetNodeID: target,
			Style:        wire.Style,
		})
	}
	return canvas.Restore(nodes, edges), doc.Meta, nil
}

func decodeNode(wire Node) (canvas.Node, error) {
	id, err := uuid.Parse(wire.ID)
	if err != nil {
		return nil, fmt.Errorf("node id %q: %w", wire.ID, err)
	}
	switch wire.Kind {
	case canvas.KindBuilding:
		return &canvas.BuildingNode{
			ID:          id,
			Points:      wire.Points,
			StrokeColor: wire.StrokeColor,
			FillColor:   wire.FillColor,
		}, nil
	case canvas.KindBlock:
		return &canvas.BlockNode{
			ID:          id,
			Label:       wire.Label,
			Position:    geometry.Point{X: wire.X, Y: wire.Y},
			WidthPx:     wire.WidthPx,
			HeightPx:    wire.HeightPx,
			ColorTheme:  wire.ColorTheme,
			FixtureType: wire.FixtureType,
			RoomNumber:  wire.RoomNumber,
			AreaSqM:     wire.AreaSqM,
		}, nil
	case canvas.KindSmall:
		return &canvas.SmallNode{
			ID:          id,
			Label:       wire.Label,
			Position:    geometry.Point{X: wire.X, Y: wire.Y},
			WidthPx:     wire.WidthPx,
			HeightPx:    wire.HeightPx,
			ColorTheme:  wire.ColorTheme,
			FixtureType: wire.FixtureType,
		}, nil
	}
	return nil, fmt.Errorf("unknown node kind %q", wire.Kind)
}
