package repo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"floorplan-studio-backend/internal/layout"
	"floorplan-studio-backend/internal/models"
)

type FloorPlanRepo struct {
	db *gorm.DB
}

type FloorPlanRepoInterface interface {
	CreateVersion(buildingID uuid.UUID, floorNumber int, name string, doc layout.Document) (*models.FloorPlan, error)
	GetSummaries(buildingID uuid.UUID) ([]models.FloorPlan, error)
	GetByID(planID uuid.UUID) (*models.FloorPlan, error)
	Publish(planID uuid.UUID) error
	DeleteFloorVersions(buildingID uuid.UUID, floorNumber int) error
}

// NewFloorPlanRepository returns a new instance of FloorPlanRepo
func NewFloorPlanRepository(db *gorm.DB) FloorPlanRepoInterface {
	return &FloorPlanRepo{db: db}
}

// CreateVersion inserts a new immutable version row for the given floor,
// numbered one above the highest existing version for that (building, floor)
// pair. Existing rows are never updated.
func (r *FloorPlanRepo) CreateVersion(buildingID uuid.UUID, floorNumber int, name string, doc layout.Document) (*models.FloorPlan, error) {
	plan := &models.FloorPlan{
		ID:          uuid.New(),
		BuildingID:  buildingID,
		Name:        name,
		FloorNumber: floorNumber,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := plan.SetDocument(doc); err != nil {
		return nil, err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var latest int
		row := tx.Model(&models.FloorPlan{}).
			Select("COALESCE(MAX(version), 0)").
			Where("building_id = ? AND floor_number = ?", buildingID, floorNumber).
			Row()
		if err := row.Scan(&latest); err != nil {
			return err
		}
		plan.Version = latest + 1
		return tx.Create(plan).Error
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// GetSummaries returns all versions for a building, floor ascending and
// version descending within a floor, the order the viewer expects.
func (r *FloorPlanRepo) GetSummaries(buildingID uuid.UUID) ([]models.FloorPlan, error) {
	var plans []models.FloorPlan
	err := r.db.
		Select("id", "building_id", "name", "floor_number", "version", "is_published").
		Where("building_id = ?", buildingID).
		Order("floor_number ASC").
		Order("version DESC").
		Find(&plans).Error
	return plans, err
}

func (r *FloorPlanRepo) GetByID(planID uuid.UUID) (*models.FloorPlan, error) {
	var plan models.FloorPlan
	err := r.db.Where("id = ?", planID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Publish flips the published flag; published layouts are no longer
// deletable.
func (r *FloorPlanRepo) Publish(planID uuid.UUID) error {
	result := r.db.Model(&models.FloorPlan{}).
		Where("id = ?", planID).
		Updates(map[string]interface{}{"is_published": true, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteFloorVersions removes every version of one floor. Callers enforce
// the top-floor / unpublished deletion rule before getting here.
func (r *FloorPlanRepo) DeleteFloorVersions(buildingID uuid.UUID, floorNumber int) error {
	return r.db.
		Where("building_id = ? AND floor_number = ?", buildingID, floorNumber).
		Delete(&models.FloorPlan{}).Error
}
