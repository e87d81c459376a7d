package i

import (
	"context"

	"github.com/beka-birhanu/vinom-pcg/game"
	"github.com/beka-birhanu/vinom-pcg/identity"
	"github.com/google/uuid"
)

// OperatorRepo defines the interface for operator persistence operations.
type OperatorRepo interface {
	// Save inserts or updates an operator in the repository.
	// If the operator already exists, it updates the record. Otherwise, it creates a new one.
	Save(operator *identity.Operator) error

	// ByID retrieves an operator by their unique ID.
	// Returns identity.ErrOperatorNotFound if there is none.
	ByID(id uuid.UUID) (*identity.Operator, error)

	// ByName retrieves an operator by their name.
	// Returns identity.ErrOperatorNotFound if there is none.
	ByName(name string) (*identity.Operator, error)
}

// LevelRepo archives finished levels.
type LevelRepo interface {
	Save(ctx context.Context, level *game.Level) error
	ByID(ctx context.Context, id uuid.UUID) (*game.Level, error)
	ByOwner(ctx context.Context, owner uuid.UUID, limit int64) ([]*game.Level, error)
}
