package editor

import (
	"fmt"

	"github.com/google/uuid"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/geometry"
)

// PointerCapture scopes global pointer listeners to one drag gesture.
// Acquire is called when a drag begins and must return the matching release;
// the session guarantees release runs exactly once per acquisition, on every
// exit path including teardown.
type PointerCapture interface {
	Acquire() (release func())
}

// NopCapture is the capture used when no listener plumbing exists, e.g. in
// tests or headless sessions.
type NopCapture struct{}

func (NopCapture) Acquire() func() { return func() {} }

// dragState is the single allowed non-idle gesture state. Its presence on
// the session means pointer listeners are held.
type dragState struct {
	nodeID      uuid.UUID
	vertexIndex int
	origin      geometry.Point
	start       geometry.Point
	release     func()
}

// BeginDrag starts a vertex drag on the building outline. Any stale drag is
// torn down first, so listeners from an improperly terminated gesture can
// never coexist with the new ones.
func (s *Session) BeginDrag(nodeID uuid.UUID, vertexIndex int, pointer geometry.Point) error {
	s.EndDrag()

	node, ok := s.model.FindNode(nodeID)
	if !ok {
		return canvas.ErrNodeNotFound
	}
	building, isBuilding := node.(*canvas.BuildingNode)
	if !isBuilding {
		return fmt.Errorf("node %s has no draggable vertices", nodeID)
	}
	if vertexIndex < 0 || vertexIndex >= len(building.Points) {
		return fmt.Errorf("vertex index %d out of range [0,%d)", vertexIndex, len(building.Points))
	}

	s.drag = &dragState{
		nodeID:      nodeID,
		vertexIndex: vertexIndex,
		origin:      building.Points[vertexIndex],
		start:       pointer,
		release:     s.capture.Acquire(),
	}
	return nil
}

// UpdateDrag moves the dragged vertex to the grid-snapped position of
// original + cumulative displacement, per axis. A move with no drag in
// progress is ignored.
func (s *Session) UpdateDrag(pointer geometry.Point) error {
	if s.drag == nil {
		return nil
	}
	node, ok := s.model.FindNode(s.drag.nodeID)
	if !ok {
		s.EndDrag()
		return canvas.ErrNodeNotFound
	}
	building := node.(*canvas.BuildingNode)

	grid := s.meta.GridSpacingPx
	dx := pointer.X - s.drag.start.X
	dy := pointer.Y - s.drag.start.Y
	snapped := geometry.Point{
		X: geometry.Snap(s.drag.origin.X+dx, grid),
		Y: geometry.Snap(s.drag.origin.Y+dy, grid),
	}

	points := append([]geometry.Point(nil), building.Points...)
	points[s.drag.vertexIndex] = snapped
	return s.model.UpdateNodeGeometry(s.drag.nodeID, canvas.GeometryPatch{Points: points})
}

// EndDrag returns to idle, releasing the pointer listeners. Idempotent.
func (s *Session) EndDrag() {
	if s.drag == nil {
		return
	}
	if s.drag.release != nil {
		s.drag.release()
	}
	s.drag = nil
}

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool {
	return s.drag != nil
}
