package repo

import (
	"floorplan-studio-backend/internal/models"
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

// BuildingRepo represents the repository for the building model
type BuildingRepo struct {
	db *gorm.DB
}

type BuildingRepoInterface interface {
	CreateBuilding(building *models.Building) (uuid.UUID, error)
	GetAllBuildings() ([]models.Building, error)
	GetBuildingByID(id uuid.UUID) (*models.Building, error)
}

func NewBuildingRepository(db *gorm.DB) BuildingRepoInterface {
	return &BuildingRepo{db: db}
}

// CreateBuilding creates a new building in the database
func (r *BuildingRepo) CreateBuilding(building *models.Building) (uuid.UUID, error) {
	uuid := uuid.New()
	building.ID = uuid
	building.CreatedAt = time.Now()
	building.UpdatedAt = time.Now()
	err := r.db.Create(building).Error
	return uuid, err
}

// GetAllBuildings returns all buildings in the database
func (r *BuildingRepo) GetAllBuildings() ([]models.Building, error) {
	var buildings []models.Building
	err := r.db.Find(&buildings).Error
	return buildings, err
}

// GetBuildingByID returns one building or gorm.ErrRecordNotFound
func (r *BuildingRepo) GetBuildingByID(id uuid.UUID) (*models.Building, error) {
	var building models.Building
	err := r.db.Where("id = ?", id).First(&building).Error
	if err != nil {
		return nil, err
	}
	return &building, nil
}
