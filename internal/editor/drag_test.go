package editor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/geometry"
)

// countingCapture records acquire/release pairing like the global pointer
// listeners the capture stands in for.
type countingCapture struct {
	acquired int
	released int
}

func (c *countingCapture) Acquire() func() {
	c.acquired++
	return func() { c.released++ }
}

func newDragSession(t *testing.T) (*Session, *countingCapture, *canvas.BuildingNode) {
	t.Helper()
	capture := &countingCapture{}
	s, err := NewSession(80, 20, capture)
	require.NoError(t, err)
	b, err := s.DropBuilding(PresetRect, geometry.Point{})
	require.NoError(t, err)
	return s, capture, b
}

func TestVertexDragSnapsToGrid(t *testing.T) {
	s, _, b := newDragSession(t)
	// Rect vertex 2 starts at (1280, 800).
	require.NoError(t, s.BeginDrag(b.ID, 2, geometry.Point{X: 500, Y: 500}))
	require.NoError(t, s.UpdateDrag(geometry.Point{X: 533, Y: 471}))

	moved := s.Model().Building().Points[2]
	assert.Equal(t, geometry.Point{X: 1320, Y: 780}, moved, "snapped to 20px grid per axis")

	// Displacement is cumulative from drag start, not incremental.
	require.NoError(t, s.UpdateDrag(geometry.Point{X: 501, Y: 502}))
	moved = s.Model().Building().Points[2]
	assert.Equal(t, geometry.Point{X: 1280, Y: 800}, moved)

	s.EndDrag()
	assert.False(t, s.Dragging())
}

func TestDragListenerLifecycle(t *testing.T) {
	s, capture, b := newDragSession(t)

	require.NoError(t, s.BeginDrag(b.ID, 0, geometry.Point{}))
	assert.Equal(t, 1, capture.acquired)
	assert.Equal(t, 0, capture.released)

	s.EndDrag()
	assert.Equal(t, 1, capture.released)

	// Ending twice never double-releases.
	s.EndDrag()
	assert.Equal(t, 1, capture.released)
}

func TestBeginDragTearsDownStaleGesture(t *testing.T) {
	s, capture, b := newDragSession(t)

	require.NoError(t, s.BeginDrag(b.ID, 0, geometry.Point{}))
	// Second drag-start without an end: the stale listeners must be released
	// before the new ones attach.
	require.NoError(t, s.BeginDrag(b.ID, 1, geometry.Point{}))
	assert.Equal(t, 2, capture.acquired)
	assert.Equal(t, 1, capture.released)

	s.Close()
	assert.Equal(t, 2, capture.released, "teardown releases the active gesture")
}

func TestBeginDragValidatesTarget(t *testing.T) {
	s, capture, b := newDragSession(t)

	assert.Error(t, s.BeginDrag(uuid.New(), 0, geometry.Point{}))
	assert.Error(t, s.BeginDrag(b.ID, len(b.Points), geometry.Point{}))
	assert.Error(t, s.BeginDrag(b.ID, -1, geometry.Point{}))

	room, err := s.DropFixture(canvas.FixtureRoom, geometry.Point{})
	require.NoError(t, err)
	assert.Error(t, s.BeginDrag(room.NodeID(), 0, geometry.Point{}), "only building vertices drag")

	assert.Equal(t, 0, capture.acquired, "failed begins never attach listeners")
	assert.False(t, s.Dragging())
}

func TestUpdateDragWithoutGestureIsIgnored(t *testing.T) {
	s, _, b := newDragSession(t)
	before := append([]geometry.Point(nil), b.Points...)

	require.NoError(t, s.UpdateDrag(geometry.Point{X: 999, Y: 999}))
	assert.Equal(t, before, s.Model().Building().Points)
}

func TestRemovingDraggedNodeEndsGesture(t *testing.T) {
	s, capture, b := newDragSession(t)
	require.NoError(t, s.BeginDrag(b.ID, 0, geometry.Point{}))
	require.NoError(t, s.RemoveNode(b.ID))
	assert.False(t, s.Dragging())
	assert.Equal(t, 1, capture.released)
}
