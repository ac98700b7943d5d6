package handlers

import (
	"Leaf-Love-Backend/domain"
	"Leaf-Love-Backend/internal/api/presenters"
	"Leaf-Love-Backend/pkg/plant"
	"Leaf-Love-Backend/pkg/vision"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PlantHandler interface {
		CreatePlant(c *fiber.Ctx) error
		GetPlants(c *fiber.Ctx) error
		DeletePlant(c *fiber.Ctx) error
	}

	plantHandler struct {
		plantService plant.PlantService
		validator    *validator.Validate
	}
)

func NewPlantHandler(plantService plant.PlantService, validator *validator.Validate) PlantHandler {
	return &plantHandler{
		plantService: plantService,
		validator:    validator,
	}
}

// CreatePlant rejects the request before reading the body when settings are
// missing. The body is read as JSON whatever its content type.
func (h *plantHandler) CreatePlant(c *fiber.Ctx) error {
	var configErr *domain.ConfigError
	if err := h.plantService.ValidateConfig(); errors.As(err, &configErr) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, configErr.Message, err)
	}

	req := new(domain.CreatePlantRequest)

	if !isJSONContentType(c) {
		c.Request().Header.SetContentType(fiber.MIMEApplicationJSON)
	}
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageImageRequired, err)
	}

	res, err := h.plantService.IdentifyPlant(c.Context(), *req)
	if err != nil {
		status, message := createErrorStatus(err)
		return presenters.ErrorResponse(c, status, message, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func isJSONContentType(c *fiber.Ctx) bool {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.HasSuffix(strings.TrimSpace(mediaType), "json")
}

func createErrorStatus(err error) (int, string) {
	var configErr *domain.ConfigError
	switch {
	case errors.As(err, &configErr):
		return fiber.StatusBadRequest, configErr.Message
	case errors.Is(err, domain.ErrImageRequired):
		return fiber.StatusBadRequest, domain.MessageImageRequired
	case errors.Is(err, vision.ErrUnsupportedImage):
		return fiber.StatusBadRequest, domain.MessageUnsupportedImage
	case errors.Is(err, vision.ErrEmptyResponse):
		return fiber.StatusInternalServerError, domain.MessageEmptyAIResponse
	case errors.Is(err, domain.ErrAIServiceFailed):
		return fiber.StatusBadGateway, domain.MessageFailedContactAI
	case errors.Is(err, vision.ErrMalformedResponse):
		return fiber.StatusInternalServerError, domain.MessageFailedParseAI
	case errors.Is(err, vision.ErrInvalidAnalysis):
		return fiber.StatusInternalServerError, domain.MessageInvalidAIAnalysis
	default:
		return fiber.StatusInternalServerError, domain.MessageFailedSavePlant
	}
}

// GetPlants lists every plant, or returns one when ?id= is given.
func (h *plantHandler) GetPlants(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		plants, err := h.plantService.GetPlants(c.Context())
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedFetchPlants, err)
		}
		return presenters.SuccessResponse(c, plants, fiber.StatusOK)
	}

	res, err := h.plantService.GetPlantByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessagePlantNotFound, nil)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedFetchPlants, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *plantHandler) DeletePlant(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageIDRequired, nil)
	}

	if err := h.plantService.DeletePlant(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessagePlantNotFound, nil)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeletePlant, err)
	}

	return presenters.MessageResponse(c, fiber.StatusOK, domain.MessageSuccessDeletePlant)
}
