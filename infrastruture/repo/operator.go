package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-pcg/identity"
	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.OperatorRepo = &OperatorRepo{}

// OperatorRepo handles the persistence of operators.
type OperatorRepo struct {
	collection *mongo.Collection
}

// NewOperatorRepo creates a new OperatorRepo with the given MongoDB client, database name, and collection name.
func NewOperatorRepo(client *mongo.Client, dbName, collectionName string) *OperatorRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &OperatorRepo{
		collection: collection,
	}
}

// EnsureIndexes makes operator names unique.
func (r *OperatorRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates an operator in the repository.
// If the operator already exists, it updates the existing record.
// If the operator does not exist, it adds a new record.
func (r *OperatorRepo) Save(operator *identity.Operator) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": operator.ID}
	update := bson.M{
		"$set": bson.M{
			"name":       operator.Name,
			"secretHash": operator.SecretHash,
			"quota":      operator.Quota,
			"updatedAt":  time.Now(),
		},
		"$setOnInsert": bson.M{
			"createdAt": operator.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return identity.ErrOperatorConflict
		}
		return fmt.Errorf("unexpected error: %w", err)
	}

	return nil
}

// ByID retrieves an operator by their ID.
func (r *OperatorRepo) ByID(id uuid.UUID) (*identity.Operator, error) {
	return r.findOne(bson.M{"_id": id})
}

// ByName retrieves an operator by their name.
func (r *OperatorRepo) ByName(name string) (*identity.Operator, error) {
	return r.findOne(bson.M{"name": name})
}

func (r *OperatorRepo) findOne(filter bson.M) (*identity.Operator, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var operator identity.Operator
	if err := r.collection.FindOne(ctx, filter).Decode(&operator); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identity.ErrOperatorNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &operator, nil
}
