package game

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/google/uuid"
)

var ErrLevelNotFound = errors.New("level not found")

// Level is a finished episode's map, kept for later retrieval.
type Level struct {
	ID             uuid.UUID      `bson:"_id" json:"id"`
	Owner          uuid.UUID      `bson:"owner" json:"owner"`
	Problem        string         `bson:"problem" json:"problem"`
	Representation string         `bson:"representation" json:"representation"`
	Shape          grid.Shape     `bson:"shape" json:"shape"`
	Tiles          []string       `bson:"tiles" json:"tiles"`
	Cells          []tile.Type    `bson:"cells" json:"cells"`
	Stats          map[string]int `bson:"stats" json:"stats"`
	Seed           int64          `bson:"seed" json:"seed"`
	Label          string         `bson:"label,omitempty" json:"label,omitempty"`
	Iterations     int            `bson:"iterations" json:"iterations"`
	Changes        int            `bson:"changes" json:"changes"`
	Solved         bool           `bson:"solved" json:"solved"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
}

// Snapshot captures the current level of e as an archive record.
func (e *Env) Snapshot(owner uuid.UUID) *Level {
	return &Level{
		ID:             uuid.New(),
		Owner:          owner,
		Problem:        e.problem.Name(),
		Representation: e.rep.Kind().String(),
		Shape:          e.grid.Shape(),
		Tiles:          e.problem.Tiles().Names(),
		Cells:          e.grid.Cells(),
		Stats:          e.stats.Map(),
		Seed:           e.seed,
		Iterations:     e.iteration,
		Changes:        e.changes,
		Solved:         e.problem.EpisodeOver(e.stats, e.stats),
		CreatedAt:      time.Now().UTC(),
	}
}
