package v1

import (
	"floorplan-studio-backend/internal/config"
	"floorplan-studio-backend/internal/handlers"
	"floorplan-studio-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerLayouts(r fiber.Router) {
	// Initialize handler
	planRepo := repo.NewFloorPlanRepository(config.DB)
	buildingRepo := repo.NewBuildingRepository(config.DB)
	layoutHandler := handlers.NewLayoutHandler(planRepo, buildingRepo)

	// Register routes
	r.Post("/layouts", layoutHandler.CreateLayout)
	r.Get("/layouts/:planId", layoutHandler.GetLayoutDetail)
	r.Put("/layouts/:planId", layoutHandler.ReplaceLayout)
	r.Post("/layouts/:planId/publish", layoutHandler.PublishLayout)
	r.Delete("/layouts/:planId", layoutHandler.DeleteLayout)
	r.Get("/layouts/:planId/svg", layoutHandler.GetLayoutSVG)
}
