package database

import (
	"Leaf-Love-Backend/entities"
	"Leaf-Love-Backend/pkg/plant"
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type postgresStore struct {
	db     *gorm.DB
	plants plant.PlantRepository
}

// DialPostgres opens the gorm connection. database is unused; Postgres URIs
// always name their database.
func DialPostgres(ctx context.Context, uri, _ string) (Store, error) {
	db, err := gorm.Open(postgres.Open(uri), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("database: postgres open %s: %w", redact(uri), err)
	}

	store := &postgresStore{db: db, plants: plant.NewGormPlantRepository(db)}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("database: postgres ping %s: %w", redact(uri), err)
	}
	return store, nil
}

func (s *postgresStore) Plants() plant.PlantRepository {
	return s.plants
}

func (s *postgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *postgresStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&entities.Plant{}); err != nil {
		return fmt.Errorf("database: migrate plants: %w", err)
	}
	return nil
}

func (s *postgresStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
