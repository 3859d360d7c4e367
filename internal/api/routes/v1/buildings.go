package v1

import (
	"floorplan-studio-backend/internal/config"
	"floorplan-studio-backend/internal/handlers"
	"floorplan-studio-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerBuildings(r fiber.Router) {
	// Initialize handler
	buildingRepo := repo.NewBuildingRepository(config.DB)
	planRepo := repo.NewFloorPlanRepository(config.DB)
	buildingHandler := handlers.NewBuildingHandler(buildingRepo, planRepo)

	// Register routes
	r.Get("/buildings", buildingHandler.GetAllBuildings)
	r.Post("/buildings", buildingHandler.CreateBuilding)
	r.Get("/buildings/:buildingId/layouts", buildingHandler.GetLayoutSummaries)
}
