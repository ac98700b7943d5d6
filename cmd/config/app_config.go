package config

import (
	"Leaf-Love-Backend/domain"
	"Leaf-Love-Backend/internal/api/handlers"
	"Leaf-Love-Backend/internal/api/presenters"
	"Leaf-Love-Backend/internal/api/routes"
	"Leaf-Love-Backend/internal/middleware"
	"Leaf-Love-Backend/internal/utils"
	"Leaf-Love-Backend/internal/utils/storage"
	"Leaf-Love-Backend/pkg/database"
	"Leaf-Love-Backend/pkg/plant"
	"Leaf-Love-Backend/pkg/vision"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type AppDeps struct {
	Repositories plant.RepositoryProvider
	Health       handlers.Pinger
	Identifier   vision.Identifier
	S3           storage.AwsS3
	LogOutput    io.Writer
	// Overrides for tests. Nil uses the loaded configuration.
	ConfigCheck func() error
}

func NewApp(connector *database.Connector) (*fiber.App, error) {
	ctx := context.Background()
	cfg := utils.Current()

	// setting up logging
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}

	// utils
	var s3 storage.AwsS3
	if cfg.AWSS3Bucket != "" {
		s3, err = storage.NewAwsS3(ctx, storage.S3Config{
			Bucket:    cfg.AWSS3Bucket,
			Region:    cfg.AWSS3Region,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
		if err != nil {
			return nil, err
		}
	}

	identifier, err := NewIdentifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return newApp(cfg, AppDeps{
		Repositories: connector,
		Health:       connector,
		Identifier:   identifier,
		S3:           s3,
		LogOutput:    io.MultiWriter(os.Stdout, file),
	}), nil
}

// NewIdentifier builds the AI client for the configured provider. It returns
// nil without error when the credentials are missing; requests then fail
// with the configuration error.
func NewIdentifier(ctx context.Context, cfg utils.Config) (vision.Identifier, error) {
	if err := cfg.Validate(); err != nil {
		log.Warnf("AI service disabled: %v", err)
		return nil, nil
	}

	opts := vision.Options{
		Provider:   cfg.AIProvider,
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.OpenAIModel,
		BaseURL:    cfg.OpenAIBaseURL,
		MaxRetries: cfg.AIMaxRetries,
		Timeout:    time.Duration(cfg.AITimeoutSeconds) * time.Second,
	}
	if cfg.AIProvider == utils.ProviderGemini {
		opts.APIKey = cfg.GeminiAPIKey
		opts.Model = cfg.GeminiModel
		opts.BaseURL = ""
	}
	return vision.New(ctx, opts)
}

func newApp(cfg utils.Config, deps AppDeps) *fiber.App {
	validator := utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	middlewares := middleware.NewMiddleware(cfg.CORSAllowOrigins, deps.LogOutput)

	opts := []plant.ServiceOption{plant.WithValidator(validator)}
	if deps.ConfigCheck != nil {
		opts = append(opts, plant.WithConfigCheck(deps.ConfigCheck))
	}

	// Service
	plantService := plant.NewPlantService(deps.Repositories, deps.Identifier, deps.S3, opts...)

	// Handler
	plantHandler := handlers.NewPlantHandler(plantService, validator)
	healthHandler := handlers.NewHealthHandler(deps.Health)

	// routes
	routesConfig := routes.Config{
		App:           app,
		PlantHandler:  plantHandler,
		HealthHandler: healthHandler,
		Middleware:    middlewares,
	}
	routesConfig.Setup()
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := domain.MessageFailedProcessRequest

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	return presenters.ErrorResponse(c, code, message, err)
}
