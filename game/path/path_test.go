package path

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empty tile.Type = iota
	solid
)

var open = tile.SetOf(empty)

func randomMap(t *testing.T, rng *rand.Rand, shape grid.Shape, wallProb float64) *grid.Map {
	t.Helper()
	cells := make([]tile.Type, shape.Size())
	for i := range cells {
		if rng.Float64() < wallProb {
			cells[i] = solid
		}
	}
	m, err := grid.MapFromCells(shape, cells)
	require.NoError(t, err)
	return m
}

func TestDistanceRecurrence(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for n := 0; n < 100; n++ {
		shape := grid.Planar(3+rng.Intn(10), 3+rng.Intn(10))
		if n%4 == 0 {
			shape = grid.Volume(3+rng.Intn(4), 3+rng.Intn(4), 2+rng.Intn(3))
		}
		m := randomMap(t, rng, shape, 0.35)
		source := shape.Coord(rng.Intn(shape.Size()))
		f := Dijkstra(m, source, open)

		require.Equal(t, 0, f.At(source))
		for i := 0; i < shape.Size(); i++ {
			c := shape.Coord(i)
			d := f.At(c)
			if c == source || d == Unreached {
				continue
			}
			require.True(t, open.Has(m.At(c)), "reached impassable cell %v", c)

			best := Unreached
			for _, dir := range shape.Directions() {
				if nd := f.At(c.Add(dir)); nd != Unreached && (best == Unreached || nd < best) {
					best = nd
				}
			}
			require.Equal(t, best+1, d, "cell %v", c)
		}

		// Passable neighbours of reached cells are reached.
		for i := 0; i < shape.Size(); i++ {
			c := shape.Coord(i)
			if !f.Reached(c) {
				continue
			}
			for _, dir := range shape.Directions() {
				nb := c.Add(dir)
				if shape.Contains(nb) && open.Has(m.At(nb)) {
					require.True(t, f.Reached(nb), "neighbour %v of %v", nb, c)
				}
			}
		}
	}
}

func TestPathTo(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for n := 0; n < 100; n++ {
		shape := grid.Planar(4+rng.Intn(9), 4+rng.Intn(9))
		m := randomMap(t, rng, shape, 0.3)
		source := shape.Coord(rng.Intn(shape.Size()))
		target := shape.Coord(rng.Intn(shape.Size()))
		f := Dijkstra(m, source, open)

		p := f.PathTo(target)
		if !f.Reached(target) {
			assert.Empty(t, p)
			continue
		}
		require.Len(t, p, f.At(target)+1)
		assert.Equal(t, target, p[0])
		assert.Equal(t, source, p[len(p)-1])
		for k := 1; k < len(p); k++ {
			assert.Equal(t, 1, p[k].Manhattan(p[k-1]))
			if k < len(p)-1 {
				assert.True(t, open.Has(m.At(p[k])))
			}
		}
	}
}

func TestDijkstraSource(t *testing.T) {
	m, err := grid.MapFromRows([][]tile.Type{
		{solid, empty, empty},
		{empty, solid, empty},
	})
	require.NoError(t, err)

	t.Run("impassable source still expands", func(t *testing.T) {
		f := Dijkstra(m, grid.XY(0, 0), open)
		assert.Equal(t, 0, f.At(grid.XY(0, 0)))
		assert.Equal(t, 1, f.At(grid.XY(1, 0)))
		assert.Equal(t, 3, f.At(grid.XY(2, 1)))
		assert.Equal(t, 1, f.At(grid.XY(0, 1)))
		assert.Equal(t, Unreached, f.At(grid.XY(1, 1)))
	})

	t.Run("outside source reaches nothing", func(t *testing.T) {
		f := Dijkstra(m, grid.XY(5, 5), open)
		assert.Equal(t, Unreached, f.At(grid.XY(5, 5)))
		assert.Equal(t, Unreached, f.At(grid.XY(1, 0)))
		assert.Empty(t, f.PathTo(grid.XY(1, 0)))
	})

	t.Run("isolated target", func(t *testing.T) {
		f := Dijkstra(m, grid.XY(2, 1), open)
		assert.False(t, f.Reached(grid.XY(0, 1)))
		assert.Nil(t, f.PathTo(grid.XY(0, 1)))
		assert.Equal(t, []grid.Coord{grid.XY(2, 1)}, f.PathTo(grid.XY(2, 1)))
	})
}

func TestLongest(t *testing.T) {
	m, err := grid.MapFromRows([][]tile.Type{
		{empty, empty, empty, empty, solid},
		{solid, solid, solid, empty, solid},
		{empty, solid, empty, empty, solid},
		{empty, solid, solid, solid, solid},
	})
	require.NoError(t, err)

	// The long component runs (0,0) -> (3,0) -> (3,2) -> (2,2): 6 steps.
	n, p := Longest(m, open)
	assert.Equal(t, 6, n)
	require.Len(t, p, 7)
	ends := []grid.Coord{p[0], p[len(p)-1]}
	assert.ElementsMatch(t, []grid.Coord{grid.XY(0, 0), grid.XY(2, 2)}, ends)

	blocked, err := grid.MapFromRows([][]tile.Type{{solid, solid}})
	require.NoError(t, err)
	n, p = Longest(blocked, open)
	assert.Equal(t, 0, n)
	assert.Empty(t, p)
}
