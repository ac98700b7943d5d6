package presenters

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	ErrorBody struct {
		Error string `json:"error"`
	}

	MessageBody struct {
		Message string `json:"message"`
	}
)

// ErrorResponse logs err and writes {"error": message}. err never reaches
// the client.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	if err != nil {
		if status >= fiber.StatusInternalServerError {
			log.Errorf("%s %s: %s: %v", c.Method(), c.OriginalURL(), message, err)
		} else {
			log.Warnf("%s %s: %s: %v", c.Method(), c.OriginalURL(), message, err)
		}
	}
	return c.Status(status).JSON(ErrorBody{Error: message})
}

func SuccessResponse(c *fiber.Ctx, data any, status int) error {
	return c.Status(status).JSON(data)
}

func MessageResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(MessageBody{Message: message})
}
