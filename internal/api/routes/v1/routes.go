package v1

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router) {
	registerHealth(r)

	registerBuildings(r)
	registerLayouts(r)
}
