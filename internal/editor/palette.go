package editor

import (
	"fmt"
	"math"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/geometry"
)

// Preset names a building-outline shape on the palette.
type Preset string

const (
	PresetRect Preset = "rect"
	PresetL    Preset = "l"
	PresetU    Preset = "u"
	PresetT    Preset = "t"
)

// Building outlines drop at a fixed real-world size; the wall thickness
// scales with the outline but never goes below 16px.
const (
	buildingWidthMeters  = 16
	buildingHeightMeters = 10
	minWallThicknessPx   = 16
	wallThicknessRatio   = 0.16

	defaultStrokeColor = "#374151"
	defaultFillColor   = "#f9fafb"
)

// PresetPoints builds the outline polygon for a palette preset.
func PresetPoints(preset Preset, w, h, thickness float64) ([]geometry.Point, error) {
	switch preset {
	case PresetRect:
		return geometry.RectPoints(w, h), nil
	case PresetL:
		return geometry.LShapePoints(w, h, thickness), nil
	case PresetU:
		return geometry.UShapePoints(w, h, thickness), nil
	case PresetT:
		return geometry.TShapePoints(w, h, thickness), nil
	}
	return nil, fmt.Errorf("unknown building preset %q", preset)
}

// DropBuilding inserts the preset outline at the drop position (viewport
// coordinates), replacing any existing outline.
func (s *Session) DropBuilding(preset Preset, viewportPos geometry.Point) (*canvas.BuildingNode, error) {
	ppm := s.meta.PixelsPerMeter
	w := buildingWidthMeters * ppm
	h := buildingHeightMeters * ppm
	thickness := math.Max(minWallThicknessPx, wallThicknessRatio*math.Min(w, h))

	points, err := PresetPoints(preset, w, h, thickness)
	if err != nil {
		return nil, err
	}
	anchor := s.ToCanvas(viewportPos)
	for i := range points {
		points[i].X += anchor.X
		points[i].Y += anchor.Y
	}
	return s.model.ReplaceBuilding(points, defaultStrokeColor, defaultFillColor), nil
}

// DropFixture inserts a fixture at the drop position (viewport coordinates)
// with its type's default real-world dimensions.
func (s *Session) DropFixture(fixtureType canvas.FixtureType, viewportPos geometry.Point) (canvas.Node, error) {
	if !fixtureType.Valid() {
		return nil, fmt.Errorf("unknown fixture type %q", fixtureType)
	}
	wM, hM := defaultFixtureSizeMeters(fixtureType)
	ppm := s.meta.PixelsPerMeter
	pos := s.ToCanvas(viewportPos)
	return s.model.AddFixture(fixtureType, pos, wM*ppm, hM*ppm, defaultLabel(fixtureType))
}

func defaultFixtureSizeMeters(f canvas.FixtureType) (w, h float64) {
	switch f {
	case canvas.FixtureRoom:
		return 4, 3
	case canvas.FixtureCorridor:
		return 6, 2
	default:
		return 1, 1
	}
}

func defaultLabel(f canvas.FixtureType) string {
	switch f {
	case canvas.FixtureRoom:
		return "Room"
	case canvas.FixtureCorridor:
		return "Corridor"
	case canvas.FixtureDoor:
		return "Door"
	case canvas.FixtureStairs:
		return "Stairs"
	case canvas.FixtureElevator:
		return "Elevator"
	case canvas.FixtureExit:
		return "Exit"
	case canvas.FixtureExtinguisher:
		return "Extinguisher"
	case canvas.FixtureClinic:
		return "Clinic"
	}
	return string(f)
}
