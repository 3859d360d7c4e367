package canvas

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan-studio-backend/internal/geometry"
)

func TestReplaceBuildingKeepsSingleOutline(t *testing.T) {
	m := NewModel()
	first := m.ReplaceBuilding(geometry.RectPoints(100, 50), "#333", "#eee")
	second := m.ReplaceBuilding(geometry.LShapePoints(200, 100, 20), "#333", "#eee")

	require.NotNil(t, m.Building())
	assert.Equal(t, second.ID, m.Building().ID)
	_, found := m.FindNode(first.ID)
	assert.False(t, found, "replaced outline must be gone")

	nodes := m.ListNodes()
	buildings := 0
	for _, n := range nodes {
		if n.NodeKind() == KindBuilding {
			buildings++
		}
	}
	assert.Equal(t, 1, buildings)
}

func TestAddFixtureVariants(t *testing.T) {
	m := NewModel()

	room, err := m.AddFixture(FixtureRoom, geometry.Point{X: 10, Y: 20}, 320, 240, "Room")
	require.NoError(t, err)
	block, ok := room.(*BlockNode)
	require.True(t, ok)
	assert.Equal(t, FixtureRoom, block.FixtureType)
	assert.Equal(t, 320.0, block.WidthPx)

	door, err := m.AddFixture(FixtureDoor, geometry.Point{X: 5, Y: 5}, 80, 80, "Door")
	require.NoError(t, err)
	_, ok = door.(*SmallNode)
	assert.True(t, ok, "doors are small glyphs")

	_, err = m.AddFixture(FixtureType("fountain"), geometry.Point{}, 10, 10, "")
	assert.Error(t, err)
}

func TestBuildingRendersBeneathFixtures(t *testing.T) {
	m := NewModel()
	_, err := m.AddFixture(FixtureRoom, geometry.Point{}, 320, 240, "Room")
	require.NoError(t, err)
	m.ReplaceBuilding(geometry.RectPoints(1280, 800), "#333", "#eee")

	nodes := m.ListNodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, KindBuilding, nodes[0].NodeKind())
}

func TestUpdateNodeLabelAndRoomNumber(t *testing.T) {
	m := NewModel()
	room, err := m.AddFixture(FixtureRoom, geometry.Point{}, 320, 240, "")
	require.NoError(t, err)

	require.NoError(t, m.UpdateNodeLabel(room.NodeID(), "Suite 101"))
	require.NoError(t, m.UpdateRoomNumber(room.NodeID(), " 101 "))
	block := room.(*BlockNode)
	assert.Equal(t, "Suite 101", block.Label)
	assert.Equal(t, "101", block.RoomNumber)

	corridor, err := m.AddFixture(FixtureCorridor, geometry.Point{}, 480, 160, "")
	require.NoError(t, err)
	assert.Error(t, m.UpdateRoomNumber(corridor.NodeID(), "9"), "only rooms carry room numbers")

	b := m.ReplaceBuilding(geometry.RectPoints(10, 10), "", "")
	assert.Error(t, m.UpdateNodeLabel(b.ID, "nope"))
	assert.ErrorIs(t, m.UpdateNodeLabel(uuid.New(), "x"), ErrNodeNotFound)
}

func TestUpdateNodeGeometry(t *testing.T) {
	m := NewModel()
	b := m.ReplaceBuilding(geometry.RectPoints(100, 100), "", "")
	newPoints := geometry.RectPoints(300, 150)
	require.NoError(t, m.UpdateNodeGeometry(b.ID, GeometryPatch{Points: newPoints}))
	assert.Equal(t, newPoints, m.Building().Points)

	room, err := m.AddFixture(FixtureRoom, geometry.Point{X: 1, Y: 2}, 320, 240, "")
	require.NoError(t, err)
	w, h, area := 400.0, 200.0, 12.5
	pos := geometry.Point{X: 40, Y: 60}
	require.NoError(t, m.UpdateNodeGeometry(room.NodeID(), GeometryPatch{
		Position: &pos, WidthPx: &w, HeightPx: &h, AreaSqM: &area,
	}))
	block := room.(*BlockNode)
	assert.Equal(t, pos, block.Position)
	assert.Equal(t, 400.0, block.WidthPx)
	assert.Equal(t, 200.0, block.HeightPx)
	assert.Equal(t, 12.5, block.AreaSqM)
}

func TestRemoveNodeDropsEdges(t *testing.T) {
	m := NewModel()
	a, err := m.AddFixture(FixtureRoom, geometry.Point{}, 320, 240, "A")
	require.NoError(t, err)
	b, err := m.AddFixture(FixtureRoom, geometry.Point{}, 320, 240, "B")
	require.NoError(t, err)
	_, err = m.AddEdge(a.NodeID(), b.NodeID(), "dashed")
	require.NoError(t, err)

	require.NoError(t, m.RemoveNode(a.NodeID()))
	assert.Empty(t, m.Edges())
	assert.Len(t, m.ListNodes(), 1)

	assert.ErrorIs(t, m.RemoveNode(a.NodeID()), ErrNodeNotFound)
}

func TestBuildingPositionIsBoundingBoxAnchor(t *testing.T) {
	m := NewModel()
	points := []geometry.Point{{X: 40, Y: 80}, {X: 240, Y: 80}, {X: 240, Y: 200}, {X: 40, Y: 200}}
	b := m.ReplaceBuilding(points, "", "")
	assert.Equal(t, geometry.Point{X: 40, Y: 80}, b.Position())
}
