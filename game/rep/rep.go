/*
Package rep implements the editing disciplines through which a controller changes a level.

Every discipline is a Kind of the single Representation type:

  - Wide writes a chosen tile at a chosen coordinate.
  - Narrow writes a chosen tile at a scan cursor that walks the grid in row-major order.
  - Turtle either moves a cursor one step or writes a tile under it.
  - TurtleHoley is Turtle on a grid whose border carries an entrance and an exit.

The same kinds run on planar and volumetric grids; the grid shape decides between the 4- and
6-direction neighbourhoods. A representation can host several agents that edit in turns.
*/
package rep

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
)

// Kind enumerates the editing disciplines.
type Kind int

const (
	Wide Kind = iota
	Narrow
	Turtle
	TurtleHoley
)

var kindNames = map[Kind]string{
	Wide:        "wide",
	Narrow:      "narrow",
	Turtle:      "turtle",
	TurtleHoley: "turtle_holey",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a kind by name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown representation %q", grid.ErrConfig, name)
}

// Spawn selects where cursors start an episode.
type Spawn int

const (
	SpawnOrigin      Spawn = iota // every agent at the first cell
	SpawnRandom                   // every agent at an independent random cell
	SpawnPartitioned              // agent i at the start of the i-th equal slice of the scan order
)

// ParseSpawn resolves a spawn rule by name. The empty name selects SpawnOrigin.
func ParseSpawn(name string) (Spawn, error) {
	switch name {
	case "", "origin":
		return SpawnOrigin, nil
	case "random":
		return SpawnRandom, nil
	case "partitioned":
		return SpawnPartitioned, nil
	}
	return 0, fmt.Errorf("%w: unknown spawn rule %q", grid.ErrConfig, name)
}

var ErrInvalidAction = errors.New("invalid action")

// Action is one edit request. Wide reads Pos and Value (the tile); Narrow reads Value (the
// tile); the turtle kinds read Value as a direction index below len(Directions()) and as
// tile Value-len(Directions()) otherwise.
type Action struct {
	Pos   grid.Coord `json:"pos"`
	Value int        `json:"value"`
}

// Result reports the outcome of one update.
type Result struct {
	Changed  bool       `json:"changed"`
	Written  grid.Coord `json:"written"` // cell the action wrote, meaningful when Changed
	Pos      grid.Coord `json:"pos"`
	PassDone bool       `json:"pass_done"` // narrow only: the scan cursor wrapped to the origin
}

// Options configure a representation.
type Options struct {
	Agents int   // number of cursors, at least one
	Spawn  Spawn // cursor placement at reset
	Warp   bool  // turtle cursors wrap around edges instead of clamping

	Holes *grid.Holes // required for TurtleHoley
	Empty tile.Type   // tile burned into the holes
}

type cursor struct {
	pos    grid.Coord
	scan   int // narrow scan position
	facing int // last direction moved, -1 before the first move
}

// Representation translates actions into grid edits for one environment.
type Representation struct {
	kind   Kind
	grid   *grid.Grid
	opts   Options
	agents []cursor
	active int
}

// New binds a representation of the given kind to a grid.
func New(kind Kind, g *grid.Grid, opts Options) (*Representation, error) {
	if _, ok := kindNames[kind]; !ok {
		return nil, fmt.Errorf("%w: unknown representation kind %d", grid.ErrConfig, int(kind))
	}
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", grid.ErrConfig)
	}
	if opts.Agents <= 0 {
		opts.Agents = 1
	}
	if opts.Agents > g.Shape().Size() {
		return nil, fmt.Errorf("%w: %d agents on %d cells", grid.ErrConfig, opts.Agents, g.Shape().Size())
	}
	if kind == TurtleHoley {
		if opts.Holes == nil {
			return nil, fmt.Errorf("%w: %s needs hole pairs", grid.ErrConfig, kind)
		}
		if err := opts.Holes.Validate(g.Shape().Padded()); err != nil {
			return nil, err
		}
		if !g.Tiles().Valid(opts.Empty) {
			return nil, fmt.Errorf("%w: hole tile %d", grid.ErrConfig, opts.Empty)
		}
	}

	r := &Representation{
		kind:   kind,
		grid:   g,
		opts:   opts,
		agents: make([]cursor, opts.Agents),
	}
	for i := range r.agents {
		r.agents[i].facing = -1
	}
	return r, nil
}

// Kind returns the editing discipline.
func (r *Representation) Kind() Kind {
	return r.kind
}

// Directions returns the unit moves available to turtle kinds.
func (r *Representation) Directions() []grid.Coord {
	return r.grid.Shape().Directions()
}

// NumActions returns the size of the flat action space of Narrow and the turtle kinds.
// Wide actions are (coordinate, tile) pairs and report the tile count only.
func (r *Representation) NumActions() int {
	n := r.grid.Tiles().Len()
	if r.kind == Turtle || r.kind == TurtleHoley {
		n += len(r.Directions())
	}
	return n
}

// Reset places the cursors for a new episode and, for holey kinds, digs the holes.
// It must run after the grid itself was reset.
func (r *Representation) Reset(rng *rand.Rand) error {
	shape := r.grid.Shape()
	size := shape.Size()
	n := len(r.agents)

	for i := range r.agents {
		scan := 0
		switch r.opts.Spawn {
		case SpawnRandom:
			scan = rng.Intn(size)
		case SpawnPartitioned:
			scan = i * size / n
		}
		r.agents[i] = cursor{pos: shape.Coord(scan), scan: scan, facing: -1}
	}
	r.active = 0

	if r.kind == TurtleHoley {
		return r.grid.DigHoles(*r.opts.Holes, r.opts.Empty)
	}
	return nil
}

// Agents returns the number of cursors.
func (r *Representation) Agents() int {
	return len(r.agents)
}

// SetActiveAgent selects the cursor the next update acts through.
func (r *Representation) SetActiveAgent(i int) error {
	if i < 0 || i >= len(r.agents) {
		return fmt.Errorf("%w: agent %d of %d", ErrInvalidAction, i, len(r.agents))
	}
	r.active = i
	return nil
}

// ActiveAgent returns the index of the cursor the next update acts through.
func (r *Representation) ActiveAgent() int {
	return r.active
}

// Position returns the active cursor's coordinate.
func (r *Representation) Position() grid.Coord {
	return r.agents[r.active].pos
}

// Positions returns every cursor's coordinate in agent order.
func (r *Representation) Positions() []grid.Coord {
	ps := make([]grid.Coord, len(r.agents))
	for i, a := range r.agents {
		ps[i] = a.pos
	}
	return ps
}

// Facing returns the last direction index the active cursor moved in, -1 if it never moved.
func (r *Representation) Facing() int {
	return r.agents[r.active].facing
}

// Update applies one action through the active cursor.
func (r *Representation) Update(a Action) (Result, error) {
	cur := &r.agents[r.active]
	switch r.kind {
	case Wide:
		return r.updateWide(cur, a)
	case Narrow:
		return r.updateNarrow(cur, a)
	case Turtle, TurtleHoley:
		return r.updateTurtle(cur, a)
	}
	return Result{}, fmt.Errorf("%w: unknown representation kind %d", ErrInvalidAction, int(r.kind))
}

func (r *Representation) updateWide(cur *cursor, a Action) (Result, error) {
	if !r.grid.Shape().Contains(a.Pos) {
		return Result{}, fmt.Errorf("%w: position %v outside the grid", ErrInvalidAction, a.Pos)
	}
	changed, err := r.write(a.Pos, a.Value)
	if err != nil {
		return Result{}, err
	}
	cur.pos = a.Pos
	return Result{Changed: changed, Written: a.Pos, Pos: cur.pos}, nil
}

func (r *Representation) updateNarrow(cur *cursor, a Action) (Result, error) {
	shape := r.grid.Shape()
	changed, err := r.write(cur.pos, a.Value)
	if err != nil {
		return Result{}, err
	}

	res := Result{Changed: changed, Written: cur.pos}
	cur.scan++
	if cur.scan >= shape.Size() {
		cur.scan = 0
		res.PassDone = true
	}
	cur.pos = shape.Coord(cur.scan)
	res.Pos = cur.pos
	return res, nil
}

func (r *Representation) updateTurtle(cur *cursor, a Action) (Result, error) {
	dirs := r.Directions()
	if a.Value < 0 {
		return Result{}, fmt.Errorf("%w: negative turtle action %d", ErrInvalidAction, a.Value)
	}
	if a.Value < len(dirs) {
		cur.pos = r.move(cur.pos, dirs[a.Value])
		cur.facing = a.Value
		return Result{Pos: cur.pos}, nil
	}

	changed, err := r.write(cur.pos, a.Value-len(dirs))
	if err != nil {
		return Result{}, err
	}
	return Result{Changed: changed, Written: cur.pos, Pos: cur.pos}, nil
}

// move steps one cell along d, clamping or wrapping each axis.
func (r *Representation) move(pos, d grid.Coord) grid.Coord {
	shape := r.grid.Shape()
	next := pos.Add(d)
	next.X = r.bound(next.X, shape.Width)
	next.Y = r.bound(next.Y, shape.Height)
	if shape.Is3D() {
		next.Z = r.bound(next.Z, shape.Depth)
	}
	return next
}

func (r *Representation) bound(v, n int) int {
	switch {
	case v < 0 && r.opts.Warp:
		return v + n
	case v < 0:
		return 0
	case v >= n && r.opts.Warp:
		return v - n
	case v >= n:
		return n - 1
	}
	return v
}

// write sets value at pos and reports whether the tile changed.
func (r *Representation) write(pos grid.Coord, value int) (bool, error) {
	t := tile.Type(value)
	if !r.grid.Tiles().Valid(t) {
		return false, fmt.Errorf("%w: tile %d outside [0,%d)", ErrInvalidAction, value, r.grid.Tiles().Len())
	}
	old, err := r.grid.Get(pos)
	if err != nil {
		return false, err
	}
	if err := r.grid.Set(pos, t); err != nil {
		return false, err
	}
	return old != t, nil
}
