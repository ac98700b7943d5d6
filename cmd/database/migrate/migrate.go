package migration

import (
	"Leaf-Love-Backend/pkg/database"
	"context"

	"github.com/gofiber/fiber/v2/log"
)

func Migrate(ctx context.Context, connector *database.Connector) error {
	store, err := connector.Store(ctx)
	if err != nil {
		log.Errorf("Error connecting to database: %v", err)
		return err
	}

	if err := store.Migrate(ctx); err != nil {
		log.Errorf("Error migrating plant store: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}
