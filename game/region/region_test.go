package region

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
	key
)

func randomMap(t *testing.T, rng *rand.Rand, shape grid.Shape) *grid.Map {
	t.Helper()
	cells := make([]tile.Type, shape.Size())
	for i := range cells {
		cells[i] = tile.Type(rng.Intn(3))
	}
	m, err := grid.MapFromCells(shape, cells)
	require.NoError(t, err)
	return m
}

// unionFind counts components by merging every passable cell with its passable neighbours.
func unionFind(l grid.Lattice, passable func(tile.Type) bool) int {
	shape := l.Shape()
	parent := make([]int, shape.Size())
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i := 0; i < shape.Size(); i++ {
		c := shape.Coord(i)
		if !passable(l.At(c)) {
			continue
		}
		for _, d := range shape.Directions() {
			n := c.Add(d)
			if shape.Contains(n) && passable(l.At(n)) {
				parent[find(i)] = find(shape.Index(n))
			}
		}
	}

	roots := map[int]bool{}
	for i := 0; i < shape.Size(); i++ {
		if passable(l.At(shape.Coord(i))) {
			roots[find(i)] = true
		}
	}
	return len(roots)
}

func TestCountMatchesUnionFind(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	passable := tile.SetOf(empty, key)
	isPassable := func(t tile.Type) bool { return t == empty || t == key }

	shapes := []grid.Shape{grid.Planar(1, 1), grid.Planar(5, 5), grid.Planar(13, 7), grid.Planar(1, 20), grid.Volume(4, 5, 3)}
	for n := 0; n < 250; n++ {
		shape := shapes[n%len(shapes)]
		m := randomMap(t, rng, shape)
		require.Equal(t, unionFind(m, isPassable), Count(m, passable), "grid %d:\n%s", n, m)
	}
}

func TestLabel(t *testing.T) {
	m, err := grid.MapFromRows([][]tile.Type{
		{empty, solid, empty},
		{empty, solid, empty},
		{solid, solid, key},
	})
	require.NoError(t, err)

	labels, n := Label(m, tile.SetOf(empty, key))
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{
		1, None, 2,
		1, None, 2,
		None, None, 2,
	}, labels)
}

func TestCountEdgeCases(t *testing.T) {
	m, err := grid.MapFromRows([][]tile.Type{{solid, solid}, {solid, solid}})
	require.NoError(t, err)
	assert.Equal(t, 0, Count(m, tile.SetOf(empty)))
	assert.Equal(t, 1, Count(m, tile.SetOf(solid)))
	assert.Equal(t, 0, Count(m, tile.SetOf()))

	// Diagonal cells are not connected.
	d, err := grid.MapFromRows([][]tile.Type{{empty, solid}, {solid, empty}})
	require.NoError(t, err)
	assert.Equal(t, 2, Count(d, tile.SetOf(empty)))
}

func TestCountVolumeLayers(t *testing.T) {
	shape := grid.Volume(2, 2, 3)
	cells := make([]tile.Type, shape.Size())
	for i := range cells {
		cells[i] = solid
	}
	// Same (x,y) on layers 0 and 1 connect; layer 2 is separate.
	cells[shape.Index(grid.XYZ(0, 0, 0))] = empty
	cells[shape.Index(grid.XYZ(0, 0, 1))] = empty
	cells[shape.Index(grid.XYZ(1, 1, 2))] = empty
	m, err := grid.MapFromCells(shape, cells)
	require.NoError(t, err)
	assert.Equal(t, 2, Count(m, tile.SetOf(empty)))
}
