package handlers

import (
	"errors"
	"log"

	"floorplan-studio-backend/internal/layout"
	"floorplan-studio-backend/internal/repo"
	"floorplan-studio-backend/internal/viewer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LayoutHandler struct {
	planRepo     repo.FloorPlanRepoInterface
	buildingRepo repo.BuildingRepoInterface
	validate     *validator.Validate
}

func NewLayoutHandler(planRepo repo.FloorPlanRepoInterface, buildingRepo repo.BuildingRepoInterface) *LayoutHandler {
	return &LayoutHandler{
		planRepo:     planRepo,
		buildingRepo: buildingRepo,
		validate:     validator.New(),
	}
}

type createLayoutRequest struct {
	BuildingID  string          `json:"buildingId" validate:"required"`
	FloorNumber int             `json:"floorNumber" validate:"required,min=1"`
	Name        string          `json:"name" validate:"required"`
	Layout      layout.Document `json:"layout"`
}

type replaceLayoutRequest struct {
	Name   string          `json:"name" validate:"required"`
	Layout layout.Document `json:"layout"`
}

// function to save a brand-new layout version for a floor
func (h *LayoutHandler) CreateLayout(c *fiber.Ctx) error {
	var dto createLayoutRequest
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

	buildingId, err := uuid.Parse(dto.BuildingID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid building ID",
		})
	}

	building, err := h.buildingRepo.GetBuildingByID(buildingId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Building not found",
		})
	} else if err != nil {
		log.Println(err, "Error loading building")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load building",
		})
	}
	if dto.FloorNumber > building.FloorLimit() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Floor number exceeds the building's floor limit",
		})
	}

	if err := layout.ValidateDocument(dto.Layout); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	plan, err := h.planRepo.CreateVersion(buildingId, dto.FloorNumber, dto.Name, dto.Layout)
	if err != nil {
		log.Println(err, "Error saving layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save layout",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

// function to replace a layout: a full-document save that becomes the next
// version of the same floor, never an in-place update
func (h *LayoutHandler) ReplaceLayout(c *fiber.Ctx) error {
	planId, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	var dto replaceLayoutRequest
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

	existing, err := h.planRepo.GetByID(planId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Layout not found",
		})
	} else if err != nil {
		log.Println(err, "Error loading layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load layout",
		})
	}

	if err := layout.ValidateDocument(dto.Layout); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	plan, err := h.planRepo.CreateVersion(existing.BuildingID, existing.FloorNumber, dto.Name, dto.Layout)
	if err != nil {
		log.Println(err, "Error saving layout version")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save layout",
		})
	}

	return c.Status(fiber.StatusOK).JSON(plan)
}

// function to get full layout detail by plan ID
func (h *LayoutHandler) GetLayoutDetail(c *fiber.Ctx) error {
	planId, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	plan, err := h.planRepo.GetByID(planId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Layout not found",
		})
	} else if err != nil {
		log.Println(err, "Error getting layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get layout",
		})
	}

	doc, err := plan.Document()
	if err != nil {
		log.Println(err, "Error decoding layout document")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Stored layout is unreadable",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"planId":      plan.ID,
		"buildingId":  plan.BuildingID,
		"name":        plan.Name,
		"floorNumber": plan.FloorNumber,
		"version":     plan.Version,
		"isPublished": plan.IsPublished,
		"layout":      doc,
	})
}

// function to render the read-only viewer projection of a layout
func (h *LayoutHandler) GetLayoutSVG(c *fiber.Ctx) error {
	planId, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	plan, err := h.planRepo.GetByID(planId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Layout not found",
		})
	} else if err != nil {
		log.Println(err, "Error getting layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get layout",
		})
	}

	doc, err := plan.Document()
	if err != nil {
		log.Println(err, "Error decoding layout document")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Stored layout is unreadable",
		})
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(viewer.RenderSVG(doc))
}

// function to publish a layout version
func (h *LayoutHandler) PublishLayout(c *fiber.Ctx) error {
	planId, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	if err := h.planRepo.Publish(planId); errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Layout not found",
		})
	} else if err != nil {
		log.Println(err, "Error publishing layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to publish layout",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Layout published successfully",
	})
}

// function to delete a floor's layouts; only the building's top floor may
// go, and only while unpublished
func (h *LayoutHandler) DeleteLayout(c *fiber.Ctx) error {
	planId, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	plan, err := h.planRepo.GetByID(planId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Layout not found",
		})
	} else if err != nil {
		log.Println(err, "Error loading layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load layout",
		})
	}

	plans, err := h.planRepo.GetSummaries(plan.BuildingID)
	if err != nil {
		log.Println(err, "Error loading layout summaries")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load layouts",
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

	var target *viewer.Summary
	for i := range latest {
		if latest[i].FloorNumber == plan.FloorNumber {
			target = &latest[i]
			break
		}
	}
	if target == nil || !viewer.Deletable(*target, maxFloor) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only the building's unpublished top floor can be deleted",
		})
	}

	if err := h.planRepo.DeleteFloorVersions(plan.BuildingID, plan.FloorNumber); err != nil {
		log.Println(err, "Error deleting layout")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete layout",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Layout deleted successfully",
	})
}
