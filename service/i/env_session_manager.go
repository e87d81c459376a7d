package i

import (
	"context"

	"github.com/beka-birhanu/vinom-pcg/game"
	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/rep"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/google/uuid"
)

// EnvConfig describes an environment to create.
type EnvConfig struct {
	Problem          string
	Representation   string
	Shape            grid.Shape
	Agents           int
	Spawn            string
	Warp             bool
	Holes            *grid.Holes
	RandomStart      bool
	MazeStart        bool
	ChangePercentage float64
	MaxIterations    int
	TracePath        bool
	UseQueue         bool
}

// EnvInfo describes a live environment.
type EnvInfo struct {
	ID             uuid.UUID  `json:"id"`
	Owner          uuid.UUID  `json:"owner"`
	Problem        string     `json:"problem"`
	Representation string     `json:"representation"`
	Shape          grid.Shape `json:"shape"`
	Tiles          []string   `json:"tiles"`
	NumActions     int        `json:"num_actions"`
	QueueKey       string     `json:"queue_key,omitempty"`
}

// EnvSessionManager runs environments on behalf of operators.
type EnvSessionManager interface {
	Create(ctx context.Context, owner uuid.UUID, cfg EnvConfig) (EnvInfo, error)
	Info(owner, id uuid.UUID) (EnvInfo, error)
	Reset(ctx context.Context, owner, id uuid.UUID, seed *int64, cells []tile.Type) (game.Observation, error)
	Step(ctx context.Context, owner, id uuid.UUID, a rep.Action) (game.StepResult, error)
	SetActiveAgent(owner, id uuid.UUID, agent int) error
	Observation(owner, id uuid.UUID, window int) (game.Observation, error)
	Stats(owner, id uuid.UUID) (map[string]int, error)
	Path(owner, id uuid.UUID) ([]grid.Coord, error)
	Border(owner, id uuid.UUID) (tile.Type, string, error)
	Close(owner, id uuid.UUID) error
}
