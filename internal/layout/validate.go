package layout

import (
	"fmt"
	"strings"

	"floorplan-studio-backend/internal/canvas"
)

// ValidationError is a pre-save rejection. It never reaches the network; the
// save is aborted and the operator keeps editing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateRoomNumbers checks every room block for a non-empty, unique room
// number within the document. A document with no rooms passes trivially.
func ValidateRoomNumbers(nodes []canvas.Node) error {
	seen := map[string]bool{}
	for _, n := range nodes {
		block, ok := n.(*canvas.BlockNode)
		if !ok || block.FixtureType != canvas.FixtureRoom {
			continue
		}
		number := strings.TrimSpace(block.RoomNumber)
		if number == "" {
			return &ValidationError{Message: "missing room number"}
		}
		if seen[number] {
			return &ValidationError{Message: fmt.Sprintf("duplicate room number: %s", number)}
		}
		seen[number] = true
	}
	return nil
}

// ValidateDocument runs the room-number gate against wire-form nodes, used on
// the server side of a save.
func ValidateDocument(doc Document) error {
	seen := map[string]bool{}
	for _, n := range doc.Nodes {
		if n.Kind != canvas.KindBlock || n.FixtureType != canvas.FixtureRoom {
			continue
		}
		number := strings.TrimSpace(n.RoomNumber)
		if number == "" {
			return &ValidationError{Message: "missing room number"}
		}
		if seen[number] {
			return &ValidationError{Message: fmt.Sprintf("duplicate room number: %s", number)}
		}
		seen[number] = true
	}
	return nil
}
