package routes

import (
	"floorplan-studio-backend/internal/config"
	"floorplan-studio-backend/internal/handlers"
	"floorplan-studio-backend/internal/libraries"
	"floorplan-studio-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerEditorSocket(app *fiber.App) {
	hub := libraries.NewHub()
	go hub.Run()

	planRepo := repo.NewFloorPlanRepository(config.DB)
	buildingRepo := repo.NewBuildingRepository(config.DB)
	editorHandler := handlers.NewEditorHandler(planRepo, buildingRepo)

	app.Get("/ws/editor", libraries.WebSocketHandler(hub, editorHandler))
}
