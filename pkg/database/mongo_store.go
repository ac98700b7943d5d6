package database

import (
	"Leaf-Love-Backend/pkg/plant"
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	plants plant.PlantRepository
}

// DialMongo connects and pings the server. The database named in the URI
// path wins over database.
func DialMongo(ctx context.Context, uri, database string) (Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("database: mongo connect %s: %w", redact(uri), err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("database: mongo ping %s: %w", redact(uri), err)
	}

	if name := databaseFromURI(uri); name != "" {
		database = name
	}
	db := client.Database(database)
	return &mongoStore{
		client: client,
		db:     db,
		plants: plant.NewMongoPlantRepository(db),
	}, nil
}

func databaseFromURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(parsed.Path, "/")
}

func (s *mongoStore) Plants() plant.PlantRepository {
	return s.plants
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Migrate creates the plant collection when it does not exist yet.
func (s *mongoStore) Migrate(ctx context.Context) error {
	names, err := s.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: plant.CollectionName}})
	if err != nil {
		return fmt.Errorf("database: list collections: %w", err)
	}
	if len(names) > 0 {
		return nil
	}
	if err := s.db.CreateCollection(ctx, plant.CollectionName); err != nil {
		return fmt.Errorf("database: create collection %s: %w", plant.CollectionName, err)
	}
	return nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
