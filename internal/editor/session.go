// Package editor holds the server-side editing session for one open floor:
// the live canvas model, selection, drag state, label drafts, and save
// gating. Handlers translate client gestures into calls on a Session.
package editor

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/geometry"
	"floorplan-studio-backend/internal/layout"
)

var ErrSaveInFlight = errors.New("a save is already in progress")

// Viewport is the current pan/zoom transform of the client canvas. Drop
// coordinates arrive in viewport space and are converted through it.
type Viewport struct {
	PanX float64
	PanY float64
	Zoom float64
}

// Session owns the editable state of the currently open floor. It is used
// from a single goroutine (the websocket read loop), matching the
// event-driven model of the client.
type Session struct {
	model    *canvas.Model
	meta     layout.Meta
	viewport Viewport

	selection uuid.UUID
	drag      *dragState
	label     *labelEdit
	capture   PointerCapture

	saving bool
}

// NewSession opens a blank floor. pixelsPerMeter and gridSpacingPx must be
// positive; a zero grid spacing would make snapping undefined.
func NewSession(pixelsPerMeter, gridSpacingPx float64, capture PointerCapture) (*Session, error) {
	if pixelsPerMeter <= 0 {
		return nil, fmt.Errorf("pixelsPerMeter must be positive, got %v", pixelsPerMeter)
	}
	if gridSpacingPx <= 0 {
		return nil, fmt.Errorf("gridSpacingPx must be positive, got %v", gridSpacingPx)
	}
	if capture == nil {
		capture = NopCapture{}
	}
	return &Session{
		model:    canvas.NewModel(),
		meta:     layout.Meta{PixelsPerMeter: pixelsPerMeter, GridSpacingPx: gridSpacingPx},
		viewport: Viewport{Zoom: 1},
		capture:  capture,
	}, nil
}

// LoadDocument replaces the session contents with a persisted document.
func (s *Session) LoadDocument(doc layout.Document) error {
	model, meta, err := layout.Decode(doc)
	if err != nil {
		return err
	}
	if meta.PixelsPerMeter <= 0 || meta.GridSpacingPx <= 0 {
		return fmt.Errorf("document meta has non-positive scale")
	}
	s.EndDrag()
	s.model = model
	s.meta = meta
	s.selection = uuid.Nil
	s.label = nil
	return nil
}

// Model exposes the live canvas model, mainly for tests and rendering.
func (s *Session) Model() *canvas.Model {
	return s.model
}

// Meta returns the current view metadata.
func (s *Session) Meta() layout.Meta {
	return s.meta
}

// SetViewport updates the pan/zoom transform used for palette drops.
func (s *Session) SetViewport(v Viewport) error {
	if v.Zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %v", v.Zoom)
	}
	s.viewport = v
	return nil
}

// ToCanvas converts a viewport-space point into canvas space.
func (s *Session) ToCanvas(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: (p.X - s.viewport.PanX) / s.viewport.Zoom,
		Y: (p.Y - s.viewport.PanY) / s.viewport.Zoom,
	}
}

// Select makes the given node the single selected one. The zero UUID clears
// the selection, disabling the side-panel controls.
func (s *Session) Select(id uuid.UUID) error {
	if id == uuid.Nil {
		s.selection = uuid.Nil
		return nil
	}
	if _, ok := s.model.FindNode(id); !ok {
		return canvas.ErrNodeNotFound
	}
	s.selection = id
	return nil
}

// Selected returns the currently selected node, if any.
func (s *Session) Selected() (canvas.Node, bool) {
	if s.selection == uuid.Nil {
		return nil, false
	}
	return s.model.FindNode(s.selection)
}

// SizeMeters reports a node's length/width in meters for the side panel.
// Buildings measure their bounding box.
func (s *Session) SizeMeters(id uuid.UUID) (lengthM, widthM float64, err error) {
	node, ok := s.model.FindNode(id)
	if !ok {
		return 0, 0, canvas.ErrNodeNotFound
	}
	ppm := s.meta.PixelsPerMeter
	switch n := node.(type) {
	case *canvas.BuildingNode:
		box := geometry.BoundingBox(n.Points)
		return box.Width / ppm, box.Height / ppm, nil
	case *canvas.BlockNode:
		return n.WidthPx / ppm, n.HeightPx / ppm, nil
	case *canvas.SmallNode:
		return n.WidthPx / ppm, n.HeightPx / ppm, nil
	}
	return 0, 0, canvas.ErrNodeNotFound
}

// ResizeMeters applies a meter-valued resize from the side panel. Negative
// inputs floor at zero. Buildings rescale their whole outline; other nodes
// get the pixel dimensions directly plus a display-only area.
func (s *Session) ResizeMeters(id uuid.UUID, lengthM, widthM float64) error {
	node, ok := s.model.FindNode(id)
	if !ok {
		return canvas.ErrNodeNotFound
	}
	ppm := s.meta.PixelsPerMeter
	widthPx := math.Max(0, lengthM*ppm)
	heightPx := math.Max(0, widthM*ppm)

	switch n := node.(type) {
	case *canvas.BuildingNode:
		rescaled := geometry.RescalePolygonToBox(n.Points, widthPx, heightPx)
		return s.model.UpdateNodeGeometry(id, canvas.GeometryPatch{Points: rescaled})
	case *canvas.BlockNode:
		area := roundMeters(widthPx/ppm) * roundMeters(heightPx/ppm)
		return s.model.UpdateNodeGeometry(id, canvas.GeometryPatch{
			WidthPx: &widthPx, HeightPx: &heightPx, AreaSqM: &area,
		})
	case *canvas.SmallNode:
		return s.model.UpdateNodeGeometry(id, canvas.GeometryPatch{
			WidthPx: &widthPx, HeightPx: &heightPx,
		})
	}
	return canvas.ErrNodeNotFound
}

// RemoveNode deletes a node, clearing selection and any drag on it first.
func (s *Session) RemoveNode(id uuid.UUID) error {
	if s.drag != nil && s.drag.nodeID == id {
		s.EndDrag()
	}
	if s.selection == id {
		s.selection = uuid.Nil
	}
	return s.model.RemoveNode(id)
}

// BeginSave runs the validation gate and, if it passes, snapshots the full
// document as of this instant. A second save cannot start until FinishSave
// is called; a gate failure leaves the model editable and untouched.
func (s *Session) BeginSave() (layout.Document, error) {
	if s.saving {
		return layout.Document{}, ErrSaveInFlight
	}
	if err := layout.ValidateRoomNumbers(s.model.ListNodes()); err != nil {
		return layout.Document{}, err
	}
	meta := s.meta
	meta.UpdatedAt = time.Now().UTC()
	s.saving = true
	return layout.Encode(s.model, meta), nil
}

// FinishSave re-enables saving. The model was never touched by the save, so
// a failed attempt can simply be retried.
func (s *Session) FinishSave() {
	s.saving = false
}

// Saving reports whether a save is outstanding.
func (s *Session) Saving() bool {
	return s.saving
}

// Document snapshots the current state without save side effects, used for
// state replies to the client.
func (s *Session) Document() layout.Document {
	return layout.Encode(s.model, s.meta)
}

// Close releases any resources held by an in-progress gesture. Safe to call
// on teardown regardless of state.
func (s *Session) Close() {
	s.EndDrag()
}

func roundMeters(m float64) float64 {
	return math.Round(m*10) / 10
}
