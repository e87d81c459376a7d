package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-pcg/game"
	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.LevelRepo = &LevelRepo{}

// LevelRepo archives finished levels.
type LevelRepo struct {
	collection *mongo.Collection
}

// NewLevelRepo creates a LevelRepo on the named collection.
func NewLevelRepo(client *mongo.Client, dbName, collectionName string) *LevelRepo {
	return &LevelRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save stores a level. Saving the same ID twice replaces the record.
func (r *LevelRepo) Save(ctx context.Context, level *game.Level) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": level.ID}, level, opts); err != nil {
		return fmt.Errorf("saving level %s: %w", level.ID, err)
	}
	return nil
}

// ByID retrieves one level.
func (r *LevelRepo) ByID(ctx context.Context, id uuid.UUID) (*game.Level, error) {
	var level game.Level
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&level); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, game.ErrLevelNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &level, nil
}

// ByOwner lists an owner's levels, newest first.
func (r *LevelRepo) ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*game.Level, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.collection.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	defer cur.Close(ctx)

	var levels []*game.Level
	if err := cur.All(ctx, &levels); err != nil {
		return nil, fmt.Errorf("decoding levels: %w", err)
	}
	return levels, nil
}
