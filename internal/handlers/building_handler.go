package handlers

import (
	"log"

	"floorplan-studio-backend/internal/models"
	"floorplan-studio-backend/internal/repo"
	"floorplan-studio-backend/internal/viewer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// for simple crud operations service layer is not required
type BuildingHandler struct {
	repo     repo.BuildingRepoInterface
	planRepo repo.FloorPlanRepoInterface
	validate *validator.Validate
}

func NewBuildingHandler(repo repo.BuildingRepoInterface, planRepo repo.FloorPlanRepoInterface) *BuildingHandler {
	return &BuildingHandler{
		repo:     repo,
		planRepo: planRepo,
		validate: validator.New(),
	}
}

// function to create a building
func (h *BuildingHandler) CreateBuilding(c *fiber.Ctx) error {
	var dto struct {
		Name           string `json:"name" validate:"required"`
		NumberOfFloors int    `json:"numberOfFloors" validate:"required,min=1,max=20"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	id, err := h.repo.CreateBuilding(&models.Building{
		Name:           dto.Name,
		NumberOfFloors: dto.NumberOfFloors,
	})
	if err != nil {
		log.Println(err, "Error creating building")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create building",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"buildingId": id.String(),
		"message":    "Building created successfully",
	})
}

// function to get all buildings
func (h *BuildingHandler) GetAllBuildings(c *fiber.Ctx) error {
	buildings, err := h.repo.GetAllBuildings()
	if err != nil {
		log.Println(err, "Error getting buildings")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get buildings",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"buildings": buildings,
	})
}

// function to list layout summaries for a building, newest version first
// within each floor, plus the viewer's per-floor reduction
func (h *BuildingHandler) GetLayoutSummaries(c *fiber.Ctx) error {
	buildingIdStr := c.Params("buildingId")
	buildingId, err := uuid.Parse(buildingIdStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid building ID",
		})
	}

	plans, err := h.planRepo.GetSummaries(buildingId)
	if err != nil {
		log.Println(err, "Error getting layout summaries")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get layouts",
		})
	}

	summaries := make([]viewer.Summary, len(plans))
	for i, p := range plans {
		summaries[i] = viewer.Summary{
			PlanID:      p.ID,
			FloorNumber: p.FloorNumber,
			Version:     p.Version,
			IsPublished: p.IsPublished,
		}
	}
	latest := viewer.LatestPerFloor(summaries)
	maxFloor := viewer.MaxFloor(latest)

	floors := make([]fiber.Map, len(latest))
	for i, s := range latest {
		floors[i] = fiber.Map{
			"planId":      s.PlanID,
			"floorNumber": s.FloorNumber,
			"version":     s.Version,
			"isPublished": s.IsPublished,
			"deletable":   viewer.Deletable(s, maxFloor),
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"layouts":      summaries,
		"floors":       floors,
		"floorOptions": viewer.FloorOptions(latest),
	})
}
