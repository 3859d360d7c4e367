package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxFloorNumber caps floor numbering regardless of what a building declares.
const MaxFloorNumber = 20

// Building represents the database model
type Building struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"buildingId"`
	Name           string    `gorm:"not null" json:"name"`
	NumberOfFloors int       `gorm:"not null" json:"numberOfFloors"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FloorLimit is the highest floor number layouts may use for this building.
func (b *Building) FloorLimit() int {
	if b.NumberOfFloors < MaxFloorNumber {
		return b.NumberOfFloors
	}
	return MaxFloorNumber
}
