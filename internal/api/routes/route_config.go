package routes

import (
	"Leaf-Love-Backend/domain"
	"Leaf-Love-Backend/internal/api/handlers"
	"Leaf-Love-Backend/internal/api/presenters"
	"Leaf-Love-Backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	PlantHandler  handlers.PlantHandler
	HealthHandler handlers.HealthHandler
	Middleware    middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.RecoverMiddleware())
	c.App.Use(c.Middleware.LoggerMiddleware())
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Plants()
	c.GuestRoute()
	c.NotFound()
}

func (c *Config) Plants() {
	for _, prefix := range []string{"/plants", "/api/plants"} {
		plants := c.App.Group(prefix)
		// plant routes
		{
			plants.Post("/", c.PlantHandler.CreatePlant)
			plants.Get("/", c.PlantHandler.GetPlants)
			plants.Delete("/", c.PlantHandler.DeletePlant)
		}
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", c.HealthHandler.Ping)
	c.App.Get("/api/health", c.HealthHandler.Health)
}

func (c *Config) NotFound() {
	c.App.Use(func(ctx *fiber.Ctx) error {
		return presenters.ErrorResponse(ctx, fiber.StatusNotFound, domain.MessageRouteNotFound, nil)
	})
}
