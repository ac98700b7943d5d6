package handlers

import (
	"Leaf-Love-Backend/domain"
	"Leaf-Love-Backend/internal/api/presenters"
	"context"

	"github.com/gofiber/fiber/v2"
)

type (
	HealthHandler interface {
		Ping(c *fiber.Ctx) error
		Health(c *fiber.Ctx) error
	}

	Pinger interface {
		Ping(ctx context.Context) error
	}

	healthHandler struct {
		store Pinger
	}
)

func NewHealthHandler(store Pinger) HealthHandler {
	return &healthHandler{store: store}
}

func (h *healthHandler) Ping(c *fiber.Ctx) error {
	return presenters.MessageResponse(c, fiber.StatusOK, "pong")
}

func (h *healthHandler) Health(c *fiber.Ctx) error {
	if err := h.store.Ping(c.Context()); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageDatabaseUnavailable, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"status": "ok"}, fiber.StatusOK)
}
