package plant

import (
	"Leaf-Love-Backend/domain"
	"Leaf-Love-Backend/entities"
	"Leaf-Love-Backend/internal/utils"
	"Leaf-Love-Backend/internal/utils/storage"
	"Leaf-Love-Backend/pkg/vision"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const imageFolder = "plants"

type (
	PlantService interface {
		ValidateConfig() error
		IdentifyPlant(ctx context.Context, req domain.CreatePlantRequest) (*entities.Plant, error)
		GetPlants(ctx context.Context) ([]entities.Plant, error)
		GetPlantByID(ctx context.Context, id string) (*entities.Plant, error)
		DeletePlant(ctx context.Context, id string) error
	}

	ServiceOption func(*plantService)

	plantService struct {
		repositories RepositoryProvider
		identifier   vision.Identifier
		s3           storage.AwsS3
		validate     *validator.Validate
		checkConfig  func() error
		now          func() time.Time
	}
)

// WithConfigCheck replaces the configuration check run before each
// identification.
func WithConfigCheck(check func() error) ServiceOption {
	return func(s *plantService) {
		s.checkConfig = check
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *plantService) {
		s.now = now
	}
}

func WithValidator(validate *validator.Validate) ServiceOption {
	return func(s *plantService) {
		s.validate = validate
	}
}

// NewPlantService builds the service. A nil s3 disables image archiving.
func NewPlantService(repositories RepositoryProvider, identifier vision.Identifier, s3 storage.AwsS3, opts ...ServiceOption) PlantService {
	s := &plantService{
		repositories: repositories,
		identifier:   identifier,
		s3:           s3,
		validate:     utils.InitValidator(),
		checkConfig:  utils.ValidateConfig,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateConfig reports missing settings before any external call. A
// missing identifier is reported as the missing AI key of the configured
// provider.
func (s *plantService) ValidateConfig() error {
	if err := s.checkConfig(); err != nil {
		return err
	}
	if s.identifier == nil {
		return utils.Current().MissingAIKeyError()
	}
	return nil
}

func (s *plantService) IdentifyPlant(ctx context.Context, req domain.CreatePlantRequest) (*entities.Plant, error) {
	if err := s.ValidateConfig(); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageRequired, err)
	}

	reply, err := s.identifier.IdentifyPlant(ctx, req.Image)
	if err != nil {
		if errors.Is(err, vision.ErrEmptyResponse) || errors.Is(err, vision.ErrUnsupportedImage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAIServiceFailed, err)
	}

	analysis, err := vision.DecodeAnalysis(s.validate, reply)
	if err != nil {
		return nil, err
	}

	plant := &entities.Plant{
		Name:         analysis.Name,
		Description:  analysis.Description,
		Difficulty:   analysis.Difficulty,
		WateringDays: analysis.WateringDays,
		Temperature:  analysis.Temperature,
		Humidity:     analysis.Humidity,
		Light:        analysis.Light,
		Image:        req.Image,
		CreatedAt:    s.now().UTC(),
	}

	objectKey := s.archiveImage(ctx, req.Image)
	if objectKey != "" {
		plant.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	repository, err := s.repositories.PlantRepository(ctx)
	if err == nil {
		err = repository.AddPlant(ctx, plant)
	}
	if err != nil {
		s.removeObject(ctx, objectKey)
		return nil, fmt.Errorf("plant: save: %w", err)
	}

	log.Infof("plant %s identified as %q", plant.ID, plant.Name)
	return plant, nil
}

// archiveImage copies an inline image to S3 and returns its object key.
// Failures are logged and yield "".
func (s *plantService) archiveImage(ctx context.Context, image string) string {
	if s.s3 == nil || !vision.IsDataURI(image) {
		return ""
	}

	_, data, err := vision.ParseDataURI(image)
	if err != nil {
		log.Warnf("skipping image archive: %v", err)
		return ""
	}

	objectKey, err := s.s3.UploadFile(ctx, uuid.New().String(), data, imageFolder, storage.AllowImage...)
	if err != nil {
		log.Warnf("image archive failed: %v", err)
		return ""
	}
	return objectKey
}

func (s *plantService) removeObject(ctx context.Context, objectKey string) {
	if s.s3 == nil || objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warnf("failed to remove archived image %s: %v", objectKey, err)
	}
}

func (s *plantService) GetPlants(ctx context.Context) ([]entities.Plant, error) {
	repository, err := s.repositories.PlantRepository(ctx)
	if err != nil {
		return nil, err
	}
	return repository.GetPlants(ctx)
}

func (s *plantService) GetPlantByID(ctx context.Context, id string) (*entities.Plant, error) {
	repository, err := s.repositories.PlantRepository(ctx)
	if err != nil {
		return nil, err
	}
	return repository.GetPlantByID(ctx, id)
}

func (s *plantService) DeletePlant(ctx context.Context, id string) error {
	repository, err := s.repositories.PlantRepository(ctx)
	if err != nil {
		return err
	}

	plant, err := repository.DeletePlant(ctx, id)
	if err != nil {
		return err
	}

	if plant.ImageURL != "" && s.s3 != nil {
		s.removeObject(ctx, s.s3.GetObjectKeyFromLink(plant.ImageURL))
	}
	return nil
}
