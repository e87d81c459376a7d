/*
Package grid owns the mutable tile grid of a level.

A Grid keeps the live map, a bordered mirror padded by one border tile on every side, and the
previous map used when an episode restarts without a fresh random fill. The live map and the
mirror are always written together so neighbour lookups through the mirror never need bounds
checks. Hole pairs dug into the mirror's boundary survive edits and resets.
*/
package grid

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/beka-birhanu/vinom-pcg/game/tile"
)

const probabilityTolerance = 1e-6

var (
	ErrConfig      = errors.New("invalid grid configuration")
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// Grid is the single writer of a level's tiles.
type Grid struct {
	shape    Shape
	tiles    *tile.Set
	border   tile.Type
	live     *Map
	bordered *Map
	previous *Map // nil until the first random fill or Load

	holes    *Holes
	holeTile tile.Type
}

// New allocates a grid filled with the border tile. Call Reset or Load before stepping.
func New(shape Shape, tiles *tile.Set, border tile.Type) (*Grid, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if tiles == nil {
		return nil, fmt.Errorf("%w: nil tile set", ErrConfig)
	}
	if !tiles.Valid(border) {
		return nil, fmt.Errorf("%w: border tile %d", ErrConfig, border)
	}

	live := NewMap(shape, border)
	return &Grid{
		shape:    shape,
		tiles:    tiles,
		border:   border,
		live:     live,
		bordered: live.Pad(border),
	}, nil
}

// Reset refills the grid. With reusePrevious set and a previous map available the previous
// map is restored; otherwise every cell is sampled independently from probs and the result
// becomes the new previous map.
func (g *Grid) Reset(rng *rand.Rand, probs map[tile.Type]float64, reusePrevious bool) error {
	if reusePrevious && g.previous != nil {
		g.live = g.previous.Clone()
		g.rebuildBordered()
		return nil
	}

	sampler, err := g.newSampler(probs)
	if err != nil {
		return err
	}

	live := NewMap(g.shape, g.border)
	for i := range live.cells {
		live.cells[i] = sampler.draw(rng)
	}
	g.live = live
	g.previous = live.Clone()
	g.rebuildBordered()
	return nil
}

// Load installs an explicit map, which also becomes the previous map.
func (g *Grid) Load(cells []tile.Type) error {
	m, err := MapFromCells(g.shape, cells)
	if err != nil {
		return err
	}
	for i, t := range m.cells {
		if !g.tiles.Valid(t) {
			return fmt.Errorf("%w: cell %d holds unknown tile %d", ErrConfig, i, t)
		}
	}
	g.live = m
	g.previous = m.Clone()
	g.rebuildBordered()
	return nil
}

// Set writes one cell in the live map and the bordered mirror.
func (g *Grid) Set(c Coord, t tile.Type) error {
	if !g.shape.Contains(c) {
		return fmt.Errorf("%w: %v outside %dx%dx%d", ErrOutOfBounds, c, g.shape.Width, g.shape.Height, g.shape.Depth)
	}
	if !g.tiles.Valid(t) {
		return fmt.Errorf("%w: unknown tile %d", ErrConfig, t)
	}
	g.live.cells[g.shape.Index(c)] = t
	g.bordered.cells[g.bordered.shape.Index(c.Add(g.shape.Offset()))] = t
	return nil
}

// Get reads one cell.
func (g *Grid) Get(c Coord) (tile.Type, error) {
	if !g.shape.Contains(c) {
		return tile.OutOfBounds, fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	return g.live.cells[g.shape.Index(c)], nil
}

// Shape implements Lattice.
func (g *Grid) Shape() Shape {
	return g.shape
}

// At implements Lattice over the live map.
func (g *Grid) At(c Coord) tile.Type {
	return g.live.At(c)
}

// Bordered returns the padded mirror. Coordinates are shifted by Shape().Offset().
func (g *Grid) Bordered() Lattice {
	return g.bordered
}

// Border returns the tile used to pad the bordered mirror.
func (g *Grid) Border() tile.Type {
	return g.border
}

// Tiles returns the tile set the grid was built with.
func (g *Grid) Tiles() *tile.Set {
	return g.tiles
}

// Cells returns a copy of the live cells in row-major order.
func (g *Grid) Cells() []tile.Type {
	return g.live.Cells()
}

// Snapshot returns a copy of the live map.
func (g *Grid) Snapshot() *Map {
	return g.live.Clone()
}

// HasPrevious reports whether a previous map is available for reuse.
func (g *Grid) HasPrevious() bool {
	return g.previous != nil
}

// DigHoles validates h against the bordered shape and burns its cells into the mirror as t.
// The holes are re-applied after every Reset and Load until replaced.
func (g *Grid) DigHoles(h Holes, t tile.Type) error {
	if !g.tiles.Valid(t) {
		return fmt.Errorf("%w: hole tile %d", ErrConfig, t)
	}
	if err := h.Validate(g.bordered.shape); err != nil {
		return err
	}
	g.holes = &h
	g.holeTile = t
	g.burnHoles()
	return nil
}

// Holes returns the dug hole pairs, if any.
func (g *Grid) Holes() (Holes, bool) {
	if g.holes == nil {
		return Holes{}, false
	}
	return *g.holes, true
}

func (g *Grid) rebuildBordered() {
	g.bordered = g.live.Pad(g.border)
	g.burnHoles()
}

func (g *Grid) burnHoles() {
	if g.holes == nil {
		return
	}
	for _, c := range g.holes.Cells() {
		g.bordered.cells[g.bordered.shape.Index(c)] = g.holeTile
	}
}

// sampler draws tile codes from a validated distribution.
type sampler struct {
	types      []tile.Type
	cumulative []float64
}

func (g *Grid) newSampler(probs map[tile.Type]float64) (*sampler, error) {
	if len(probs) == 0 {
		return nil, fmt.Errorf("%w: empty tile distribution", ErrConfig)
	}

	types := make([]tile.Type, 0, len(probs))
	for t, p := range probs {
		if !g.tiles.Valid(t) {
			return nil, fmt.Errorf("%w: unknown tile %d in distribution", ErrConfig, t)
		}
		if p < 0 || math.IsNaN(p) {
			return nil, fmt.Errorf("%w: tile %q has probability %v", ErrConfig, g.tiles.Name(t), p)
		}
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	s := &sampler{types: types, cumulative: make([]float64, len(types))}
	total := 0.0
	for i, t := range types {
		total += probs[t]
		s.cumulative[i] = total
	}
	if math.Abs(total-1) > probabilityTolerance {
		return nil, fmt.Errorf("%w: tile probabilities sum to %v", ErrConfig, total)
	}
	return s, nil
}

func (s *sampler) draw(rng *rand.Rand) tile.Type {
	r := rng.Float64() * s.cumulative[len(s.cumulative)-1]
	i := sort.SearchFloat64s(s.cumulative, r)
	for i < len(s.types)-1 && s.cumulative[i] <= r {
		i++
	}
	return s.types[i]
}
