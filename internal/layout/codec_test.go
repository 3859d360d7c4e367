package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/geometry"
)

func TestEncodeDecodePreservesIdentityAndOrder(t *testing.T) {
	m := canvas.NewModel()
	building := m.ReplaceBuilding(geometry.UShapePoints(1280, 800, 128), "#333333", "#f5f5f5")
	room, err := m.AddFixture(canvas.FixtureRoom, geometry.Point{X: 120, Y: 80}, 320, 240, "Room 101")
	require.NoError(t, err)
	require.NoError(t, m.UpdateRoomNumber(room.NodeID(), "101"))
	door, err := m.AddFixture(canvas.FixtureDoor, geometry.Point{X: 40, Y: 40}, 80, 80, "Door")
	require.NoError(t, err)
	_, err = m.AddEdge(room.NodeID(), door.NodeID(), "dashed")
	require.NoError(t, err)

	meta := Meta{PixelsPerMeter: 80, GridSpacingPx: 20, UpdatedAt: time.Now().UTC()}
	doc := Encode(m, meta)

	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, canvas.KindBuilding, doc.Nodes[0].Kind, "building serializes first")
	assert.Equal(t, building.ID.String(), doc.Nodes[0].ID)
	assert.Equal(t, "101", doc.Nodes[1].RoomNumber)
	require.Len(t, doc.Edges, 1)

	restored, restoredMeta, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, meta, restoredMeta)

	require.NotNil(t, restored.Building())
	assert.Equal(t, building.ID, restored.Building().ID)
	assert.Equal(t, building.Points, restored.Building().Points)

	got, found := restored.FindNode(room.NodeID())
	require.True(t, found)
	restoredRoom := got.(*canvas.BlockNode)
	assert.Equal(t, "Room 101", restoredRoom.Label)
	assert.Equal(t, geometry.Point{X: 120, Y: 80}, restoredRoom.Position)

	edges := restored.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, room.NodeID(), edges[0].SourceNodeID)
}

func TestDecodeRejectsMalformedNodes(t *testing.T) {
	_, _, err := Decode(Document{Nodes: []Node{{ID: "not-a-uuid", Kind: canvas.KindBlock}}})
	assert.Error(t, err)

	_, _, err = Decode(Document{Nodes: []Node{{ID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Kind: "sprite"}}})
	assert.Error(t, err)
}
