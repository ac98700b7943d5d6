package middleware

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		LoggerMiddleware() fiber.Handler
		RecoverMiddleware() fiber.Handler
	}

	middleware struct {
		allowOrigins string
		logOutput    io.Writer
	}
)

// NewMiddleware builds the shared middlewares. A nil logOutput logs to
// stdout.
func NewMiddleware(allowOrigins string, logOutput io.Writer) Middleware {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	if logOutput == nil {
		logOutput = os.Stdout
	}
	return &middleware{
		allowOrigins: allowOrigins,
		logOutput:    logOutput,
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: m.allowOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}

func (m *middleware) LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} ${queryParams}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     m.logOutput,
	})
}

func (m *middleware) RecoverMiddleware() fiber.Handler {
	return recover.New(recover.Config{EnableStackTrace: true})
}
