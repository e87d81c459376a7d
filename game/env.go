package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/maze"
	"github.com/beka-birhanu/vinom-pcg/game/obs"
	"github.com/beka-birhanu/vinom-pcg/game/problem"
	"github.com/beka-birhanu/vinom-pcg/game/rep"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
)

// Environment errors.
var (
	ErrNoProblem  = errors.New("environment has no problem")
	ErrNotReset   = errors.New("environment was never reset")
	ErrEpisodeEnd = errors.New("episode is over")
)

const (
	defaultChangePercentage = 0.2 // share of the cells an episode may change
	holeTileName            = "empty"
	wallTileName            = "solid"
)

// Options configure an environment.
type Options struct {
	Problem problem.Problem
	Kind    rep.Kind
	Shape   grid.Shape
	Agents  int
	Spawn   rep.Spawn
	Warp    bool

	// Holes opens the border for TurtleHoley. Nil selects grid.DefaultHoles.
	Holes *grid.Holes

	// RandomStart samples a fresh map on every reset instead of restoring the previous one.
	RandomStart bool

	// MazeStart starts every episode from a freshly carved maze of empty and solid tiles
	// instead of a sampled fill. Planar grids only.
	MazeStart bool

	// ChangePercentage bounds the number of changed cells per episode as a share of the grid.
	// Zero selects 0.2.
	ChangePercentage float64

	// MaxIterations bounds the number of steps per episode. Zero selects the change budget
	// times the cell count.
	MaxIterations int

	// TracePath keeps the path measured by every statistics pass.
	TracePath bool
}

// ResetOptions seed one episode. Cells, when set, replaces the random fill.
type ResetOptions struct {
	Seed  int64
	Cells []tile.Type
}

// StepResult reports the outcome of one step.
type StepResult struct {
	Changed   bool           `json:"changed"`
	Pos       grid.Coord     `json:"pos"`
	PassDone  bool           `json:"pass_done"`
	Reward    float64        `json:"reward"`
	Done      bool           `json:"done"`
	Truncated bool           `json:"truncated"`
	Stats     map[string]int `json:"stats"`
	Info      map[string]int `json:"info"`
}

// Observation is what a controller sees of the level.
type Observation struct {
	Shape     grid.Shape   `json:"shape"`
	Cells     []tile.Type  `json:"cells"`
	Pos       grid.Coord   `json:"pos"`
	Positions []grid.Coord `json:"positions"`
	Agent     int          `json:"agent"`
	Heatmap   []int        `json:"heatmap,omitempty"`
}

// Env drives one level through episodes of representation updates scored by a problem.
// It is not safe for concurrent use.
type Env struct {
	opts    Options
	problem problem.Problem
	grid    *grid.Grid
	rep     *rep.Representation

	rng           *rand.Rand
	seed          int64
	open, wall    tile.Type
	reset         bool
	stats         problem.Snapshot
	iteration     int
	changes       int
	maxChanges    int
	maxIterations int
	heatmap       []int
	done          bool
}

// NewEnv builds an environment. The grid is filled with the border tile until Reset.
func NewEnv(opts Options) (*Env, error) {
	if opts.Problem == nil {
		return nil, ErrNoProblem
	}
	if opts.ChangePercentage < 0 || opts.ChangePercentage > 1 {
		return nil, fmt.Errorf("%w: change percentage %v", grid.ErrConfig, opts.ChangePercentage)
	}
	if opts.ChangePercentage == 0 {
		opts.ChangePercentage = defaultChangePercentage
	}
	if opts.MaxIterations < 0 {
		return nil, fmt.Errorf("%w: max iterations %d", grid.ErrConfig, opts.MaxIterations)
	}

	p := opts.Problem
	g, err := grid.New(opts.Shape, p.Tiles(), p.Border())
	if err != nil {
		return nil, err
	}

	if opts.Holes != nil && opts.Kind != rep.TurtleHoley {
		return nil, fmt.Errorf("%w: holes need the %s representation", grid.ErrConfig, rep.TurtleHoley)
	}

	repOpts := rep.Options{
		Agents: opts.Agents,
		Spawn:  opts.Spawn,
		Warp:   opts.Warp,
	}
	if opts.Kind == rep.TurtleHoley {
		holes := grid.DefaultHoles(opts.Shape)
		if opts.Holes != nil {
			holes = *opts.Holes
		}
		empty, err := p.Tiles().Type(holeTileName)
		if err != nil {
			return nil, fmt.Errorf("%w: holes need an %q tile: %w", grid.ErrConfig, holeTileName, err)
		}
		repOpts.Holes = &holes
		repOpts.Empty = empty
	}

	r, err := rep.New(opts.Kind, g, repOpts)
	if err != nil {
		return nil, err
	}

	var open, wall tile.Type
	if opts.MazeStart {
		if opts.Shape.Is3D() {
			return nil, fmt.Errorf("%w: maze starts need a planar grid", grid.ErrConfig)
		}
		if open, err = p.Tiles().Type(holeTileName); err != nil {
			return nil, fmt.Errorf("%w: maze start: %w", grid.ErrConfig, err)
		}
		if wall, err = p.Tiles().Type(wallTileName); err != nil {
			return nil, fmt.Errorf("%w: maze start: %w", grid.ErrConfig, err)
		}
	}

	size := opts.Shape.Size()
	maxChanges := max(1, int(opts.ChangePercentage*float64(size)))
	maxIterations := opts.MaxIterations
	if maxIterations == 0 {
		maxIterations = maxChanges * size
	}

	return &Env{
		opts:          opts,
		problem:       p,
		grid:          g,
		rep:           r,
		maxChanges:    maxChanges,
		maxIterations: maxIterations,
		heatmap:       make([]int, size),
		open:          open,
		wall:          wall,
	}, nil
}

// Reset starts a new episode and returns the first observation.
func (e *Env) Reset(ro ResetOptions) (Observation, error) {
	e.rng = rand.New(rand.NewSource(ro.Seed))
	e.seed = ro.Seed

	var err error
	switch {
	case ro.Cells != nil:
		err = e.grid.Load(ro.Cells)
	case e.opts.MazeStart:
		var m *grid.Map
		if m, err = maze.Carve(e.grid.Shape(), e.rng, e.open, e.wall); err == nil {
			err = e.grid.Load(m.Cells())
		}
	default:
		err = e.grid.Reset(e.rng, e.problem.Probabilities(), !e.opts.RandomStart)
	}
	if err != nil {
		return Observation{}, err
	}
	if err := e.rep.Reset(e.rng); err != nil {
		return Observation{}, err
	}

	e.iteration = 0
	e.changes = 0
	e.done = false
	clear(e.heatmap)
	e.stats = e.problem.Stats(e.grid, e.opts.TracePath)
	e.reset = true
	return e.Observation(0)
}

// Step applies one action through the active agent. Statistics are recomputed only when the
// grid changed. Malformed actions fail without consuming an iteration.
func (e *Env) Step(a rep.Action) (StepResult, error) {
	if !e.reset {
		return StepResult{}, ErrNotReset
	}
	if e.done {
		return StepResult{}, ErrEpisodeEnd
	}

	res, err := e.rep.Update(a)
	if err != nil {
		return StepResult{}, err
	}
	e.iteration++

	old := e.stats
	if res.Changed {
		e.changes++
		e.heatmap[e.grid.Shape().Index(res.Written)]++
		e.stats = e.problem.Stats(e.grid, e.opts.TracePath)
	}

	over := e.problem.EpisodeOver(e.stats, old)
	truncated := !over && (e.changes >= e.maxChanges || e.iteration >= e.maxIterations)
	e.done = over || truncated

	info := e.problem.DebugInfo(e.stats, old)
	info["iterations"] = e.iteration
	info["changes"] = e.changes
	info["max_iterations"] = e.maxIterations

	return StepResult{
		Changed:   res.Changed,
		Pos:       res.Pos,
		PassDone:  res.PassDone,
		Reward:    e.problem.Reward(e.stats, old),
		Done:      e.done,
		Truncated: truncated,
		Stats:     e.stats.Map(),
		Info:      info,
	}, nil
}

// Observation returns the full map when window is zero, otherwise the window x window block
// centred on the active agent with tile.OutOfBounds outside the grid.
func (e *Env) Observation(window int) (Observation, error) {
	o := Observation{
		Pos:       e.rep.Position(),
		Positions: e.rep.Positions(),
		Agent:     e.rep.ActiveAgent(),
	}
	if window == 0 {
		o.Shape = e.grid.Shape()
		o.Cells = e.grid.Cells()
		o.Heatmap = append([]int(nil), e.heatmap...)
		return o, nil
	}

	m, err := obs.Crop(e.grid, o.Pos, window)
	if err != nil {
		return Observation{}, err
	}
	o.Shape = m.Shape()
	o.Cells = m.Cells()
	return o, nil
}

// SetActiveAgent selects the agent the next step acts through.
func (e *Env) SetActiveAgent(i int) error {
	return e.rep.SetActiveAgent(i)
}

// Stats returns the statistics of the current grid.
func (e *Env) Stats() problem.Snapshot {
	return e.stats
}

// LastPath returns the path traced by the latest statistics pass. It is empty unless the
// environment was built with TracePath.
func (e *Env) LastPath() []grid.Coord {
	return e.problem.LastPath()
}

// Border returns the tile code padding the bordered grid.
func (e *Env) Border() tile.Type {
	return e.grid.Border()
}

// Cells returns a copy of the live grid.
func (e *Env) Cells() []tile.Type {
	return e.grid.Cells()
}

// Shape returns the grid shape.
func (e *Env) Shape() grid.Shape {
	return e.grid.Shape()
}

// Problem returns the problem scoring the environment.
func (e *Env) Problem() problem.Problem {
	return e.problem
}

// Kind returns the representation kind.
func (e *Env) Kind() rep.Kind {
	return e.rep.Kind()
}

// NumActions returns the size of the flat action space.
func (e *Env) NumActions() int {
	return e.rep.NumActions()
}

// Done reports whether the current episode ended.
func (e *Env) Done() bool {
	return e.done
}

// Seed returns the seed of the current episode.
func (e *Env) Seed() int64 {
	return e.seed
}

// Iterations returns the number of steps taken in the current episode.
func (e *Env) Iterations() int {
	return e.iteration
}

// Changes returns the number of cells changed in the current episode.
func (e *Env) Changes() int {
	return e.changes
}
