package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/geometry"
)

func roomBlock(t *testing.T, m *canvas.Model, number string) canvas.Node {
	t.Helper()
	node, err := m.AddFixture(canvas.FixtureRoom, geometry.Point{}, 320, 240, number)
	require.NoError(t, err)
	if number != "" {
		require.NoError(t, m.UpdateRoomNumber(node.NodeID(), number))
	}
	return node
}

func TestValidatePassesWithoutRooms(t *testing.T) {
	m := canvas.NewModel()
	m.ReplaceBuilding(geometry.RectPoints(100, 100), "", "")
	_, err := m.AddFixture(canvas.FixtureCorridor, geometry.Point{}, 480, 160, "hall")
	require.NoError(t, err)

	assert.NoError(t, ValidateRoomNumbers(m.ListNodes()))
}

func TestValidateRejectsMissingRoomNumber(t *testing.T) {
	m := canvas.NewModel()
	roomBlock(t, m, "")

	err := ValidateRoomNumbers(m.ListNodes())
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "missing room number", verr.Message)

	// Whitespace-only is still missing.
	node := m.ListNodes()[0].(*canvas.BlockNode)
	node.RoomNumber = "   "
	assert.Error(t, ValidateRoomNumbers(m.ListNodes()))

	node.RoomNumber = "101"
	assert.NoError(t, ValidateRoomNumbers(m.ListNodes()))
}

func TestValidateRejectsDuplicateRoomNumbers(t *testing.T) {
	m := canvas.NewModel()
	roomBlock(t, m, "101")
	second := roomBlock(t, m, "101")

	err := ValidateRoomNumbers(m.ListNodes())
	require.Error(t, err)
	assert.Equal(t, "duplicate room number: 101", err.Error())

	require.NoError(t, m.UpdateRoomNumber(second.NodeID(), "102"))
	assert.NoError(t, ValidateRoomNumbers(m.ListNodes()))
}

func TestValidateDocumentMatchesModelGate(t *testing.T) {
	m := canvas.NewModel()
	roomBlock(t, m, "201")
	roomBlock(t, m, "201")
	doc := Encode(m, Meta{PixelsPerMeter: 80, GridSpacingPx: 20})

	err := ValidateDocument(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate room number: 201")

	doc.Nodes[1].RoomNumber = "202"
	assert.NoError(t, ValidateDocument(doc))
}
