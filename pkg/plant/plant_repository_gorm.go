package plant

import (
	"Leaf-Love-Backend/domain"
	"Leaf-Love-Backend/entities"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormPlantRepository struct {
	db *gorm.DB
}

func NewGormPlantRepository(db *gorm.DB) PlantRepository {
	return &gormPlantRepository{db: db}
}

func parsePlantUUID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidPlantID, id)
	}
	return parsed.String(), nil
}

func (r *gormPlantRepository) AddPlant(ctx context.Context, plant *entities.Plant) error {
	plant.ID = uuid.New().String()
	if err := r.db.WithContext(ctx).Create(plant).Error; err != nil {
		plant.ID = ""
		return err
	}
	return nil
}

func (r *gormPlantRepository) GetPlants(ctx context.Context) ([]entities.Plant, error) {
	plants := []entities.Plant{}
	if err := r.db.WithContext(ctx).Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *gormPlantRepository) GetPlantByID(ctx context.Context, id string) (*entities.Plant, error) {
	plantID, err := parsePlantUUID(id)
	if err != nil {
		return nil, err
	}

	var plant entities.Plant
	if err := r.db.WithContext(ctx).Where("id = ?", plantID).First(&plant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}
	return &plant, nil
}

func (r *gormPlantRepository) DeletePlant(ctx context.Context, id string) (*entities.Plant, error) {
	plantID, err := parsePlantUUID(id)
	if err != nil {
		return nil, err
	}

	var plant entities.Plant
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", plantID).
		Delete(&plant)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrPlantNotFound
	}
	return &plant, nil
}
