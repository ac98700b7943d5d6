package plant

import (
	"Leaf-Love-Backend/entities"
	"context"
)

type (
	// PlantRepository is the plant collection. Implementations assign the ID
	// on insert and return domain.ErrPlantNotFound or domain.ErrInvalidPlantID
	// for lookups that cannot match.
	PlantRepository interface {
		AddPlant(ctx context.Context, plant *entities.Plant) error
		GetPlants(ctx context.Context) ([]entities.Plant, error)
		GetPlantByID(ctx context.Context, id string) (*entities.Plant, error)
		DeletePlant(ctx context.Context, id string) (*entities.Plant, error)
	}

	// RepositoryProvider hands out the repository once the store is connected.
	RepositoryProvider interface {
		PlantRepository(ctx context.Context) (PlantRepository, error)
	}

	staticProvider struct {
		repository PlantRepository
	}
)

func StaticProvider(repository PlantRepository) RepositoryProvider {
	return staticProvider{repository: repository}
}

func (p staticProvider) PlantRepository(context.Context) (PlantRepository, error) {
	return p.repository, nil
}
