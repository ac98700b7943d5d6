package config

import (
	"Leaf-Love-Backend/internal/utils"
	"Leaf-Love-Backend/pkg/database"

	"github.com/gofiber/fiber/v2/log"
)

// ConnectDB builds the lazy store connector. Nothing is dialed until the
// first request needs the store. Development shares one connector per URI
// across the process.
func ConnectDB() *database.Connector {
	opts := database.Options{
		URI:      utils.GetConfig("MONGODB_URI"),
		Database: utils.GetConfig("MONGODB_DATABASE"),
	}
	if opts.URI == "" {
		log.Warn("MONGODB_URI is not set, plant requests will fail until it is configured")
	}

	if utils.Current().IsDevelopment() {
		return database.Shared(opts)
	}
	return database.NewConnector(opts)
}
