package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"floorplan-studio-backend/internal/layout"
)

// FloorPlan is one saved version of one floor's layout document. Versions
// are immutable: every save for a (building, floor) pair inserts a new row
// with the next version number.
type FloorPlan struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"planId"`
	BuildingID  uuid.UUID      `gorm:"not null;index:idx_building_floor" json:"buildingId"`
	Name        string         `gorm:"not null" json:"name"`
	FloorNumber int            `gorm:"not null;index:idx_building_floor" json:"floorNumber"`
	Version     int            `gorm:"not null" json:"version"`
	IsPublished bool           `gorm:"default:false" json:"isPublished"`
	Layout      datatypes.JSON `json:"layout"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Document unmarshals the stored layout JSON.
func (p *FloorPlan) Document() (layout.Document, error) {
	var doc layout.Document
	err := json.Unmarshal(p.Layout, &doc)
	return doc, err
}

// SetDocument marshals a layout document into the stored JSON column.
func (p *FloorPlan) SetDocument(doc layout.Document) error {
	bytes, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	p.Layout = datatypes.JSON(bytes)
	return nil
}
