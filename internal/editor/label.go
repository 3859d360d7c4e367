package editor

import (
	"strings"

	"github.com/google/uuid"

	"floorplan-studio-backend/internal/canvas"
)

// labelEdit tracks an in-progress inline label edit so a cancel can fall
// back to the text the node had when editing started.
type labelEdit struct {
	nodeID   uuid.UUID
	previous string
}

// OpenLabelEdit activates inline editing on a fixture's label. Only one
// label edit is active at a time; opening a new one abandons the old draft.
func (s *Session) OpenLabelEdit(id uuid.UUID) error {
	node, ok := s.model.FindNode(id)
	if !ok {
		return canvas.ErrNodeNotFound
	}
	var previous string
	switch n := node.(type) {
	case *canvas.BlockNode:
		previous = n.Label
	case *canvas.SmallNode:
		previous = n.Label
	default:
		return canvas.ErrNodeNotFound
	}
	s.label = &labelEdit{nodeID: id, previous: previous}
	return nil
}

// CommitLabel ends the active edit with the given text. A blank commit keeps
// the previous label instead of storing empty text. Committing on a room
// block also stores the digits of the text as the room number, while the
// visible label keeps the raw text.
func (s *Session) CommitLabel(text string) error {
	edit := s.label
	if edit == nil {
		return nil
	}
	s.label = nil

	final := text
	if strings.TrimSpace(text) == "" {
		final = edit.previous
	}
	if err := s.model.UpdateNodeLabel(edit.nodeID, final); err != nil {
		return err
	}

	node, _ := s.model.FindNode(edit.nodeID)
	if block, ok := node.(*canvas.BlockNode); ok && block.FixtureType == canvas.FixtureRoom {
		return s.model.UpdateRoomNumber(edit.nodeID, digitsOnly(final))
	}
	return nil
}

// CancelLabelEdit discards the draft; the node keeps its previous label.
func (s *Session) CancelLabelEdit() {
	s.label = nil
}

// EditingLabel reports whether a label edit is active, and for which node.
func (s *Session) EditingLabel() (uuid.UUID, bool) {
	if s.label == nil {
		return uuid.Nil, false
	}
	return s.label.nodeID, true
}

func digitsOnly(text string) string {
	var sb strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
