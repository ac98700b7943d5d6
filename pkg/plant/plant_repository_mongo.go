package plant

import (
	"Leaf-Love-Backend/domain"
	"Leaf-Love-Backend/entities"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const CollectionName = "plants"

type (
	plantDocument struct {
		ID             bson.ObjectID `bson:"_id"`
		entities.Plant `bson:",inline"`
	}

	mongoPlantRepository struct {
		collection *mongo.Collection
	}
)

func NewMongoPlantRepository(db *mongo.Database) PlantRepository {
	return &mongoPlantRepository{collection: db.Collection(CollectionName)}
}

func (d plantDocument) toEntity() entities.Plant {
	plant := d.Plant
	plant.ID = d.ID.Hex()
	if plant.WateringDays == nil {
		plant.WateringDays = []string{}
	}
	return plant
}

func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", domain.ErrInvalidPlantID, id)
	}
	return oid, nil
}

func (r *mongoPlantRepository) AddPlant(ctx context.Context, plant *entities.Plant) error {
	doc := plantDocument{ID: bson.NewObjectID(), Plant: *plant}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	plant.ID = doc.ID.Hex()
	return nil
}

func (r *mongoPlantRepository) GetPlants(ctx context.Context) ([]entities.Plant, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var docs []plantDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	plants := make([]entities.Plant, 0, len(docs))
	for _, doc := range docs {
		plants = append(plants, doc.toEntity())
	}
	return plants, nil
}

func (r *mongoPlantRepository) GetPlantByID(ctx context.Context, id string) (*entities.Plant, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc plantDocument
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}

	plant := doc.toEntity()
	return &plant, nil
}

func (r *mongoPlantRepository) DeletePlant(ctx context.Context, id string) (*entities.Plant, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc plantDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}

	plant := doc.toEntity()
	return &plant, nil
}
