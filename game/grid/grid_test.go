package grid

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empty tile.Type = iota
	solid
	key
)

func newTiles(t *testing.T) *tile.Set {
	t.Helper()
	s, err := tile.NewSet("empty", "solid", "key")
	require.NoError(t, err)
	return s
}

func newGrid(t *testing.T, shape Shape) *Grid {
	t.Helper()
	g, err := New(shape, newTiles(t), solid)
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	tiles := newTiles(t)

	_, err := New(Planar(0, 3), tiles, solid)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New(Planar(3, 3), nil, solid)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New(Planar(3, 3), tiles, tile.Type(9))
	assert.ErrorIs(t, err, ErrConfig)

	g, err := New(Planar(3, 2), tiles, solid)
	require.NoError(t, err)
	assert.Equal(t, solid, g.Border())
	assert.False(t, g.HasPrevious())
	assert.Equal(t, Planar(5, 4), g.Bordered().Shape())
}

func TestReset(t *testing.T) {
	probs := map[tile.Type]float64{empty: 0.6, solid: 0.3, key: 0.1}

	t.Run("same seed samples the same map", func(t *testing.T) {
		a, b := newGrid(t, Planar(12, 9)), newGrid(t, Planar(12, 9))
		require.NoError(t, a.Reset(rand.New(rand.NewSource(7)), probs, false))
		require.NoError(t, b.Reset(rand.New(rand.NewSource(7)), probs, false))
		assert.Equal(t, a.Cells(), b.Cells())
		assert.True(t, a.HasPrevious())
	})

	t.Run("reuse restores the previous map", func(t *testing.T) {
		g := newGrid(t, Planar(6, 6))
		rng := rand.New(rand.NewSource(1))
		require.NoError(t, g.Reset(rng, probs, true))
		first := g.Cells()

		require.NoError(t, g.Set(XY(2, 3), key))
		require.NoError(t, g.Reset(rng, probs, true))
		assert.Equal(t, first, g.Cells())
		assert.Equal(t, first[Planar(6, 6).Index(XY(2, 3))], g.Bordered().At(XY(3, 4)))
	})

	t.Run("fresh fills replace the previous map", func(t *testing.T) {
		g := newGrid(t, Planar(10, 10))
		rng := rand.New(rand.NewSource(3))
		require.NoError(t, g.Reset(rng, probs, false))
		first := g.Snapshot()
		require.NoError(t, g.Reset(rng, probs, false))
		second := g.Snapshot()
		require.NoError(t, g.Reset(rng, probs, true))
		assert.True(t, second.Equal(g.Snapshot()))
		assert.False(t, first.Equal(second))
	})

	t.Run("sampled tiles stay in the distribution", func(t *testing.T) {
		g := newGrid(t, Planar(20, 20))
		require.NoError(t, g.Reset(rand.New(rand.NewSource(5)), map[tile.Type]float64{empty: 0.5, key: 0.5}, false))
		for _, c := range g.Cells() {
			assert.NotEqual(t, solid, c)
		}
	})

	t.Run("rejects malformed distributions", func(t *testing.T) {
		g := newGrid(t, Planar(4, 4))
		rng := rand.New(rand.NewSource(1))
		for name, bad := range map[string]map[tile.Type]float64{
			"empty":    {},
			"sum":      {empty: 0.5, solid: 0.4},
			"negative": {empty: 1.2, solid: -0.2},
			"unknown":  {empty: 0.5, tile.Type(8): 0.5},
		} {
			assert.ErrorIs(t, g.Reset(rng, bad, false), ErrConfig, name)
		}
		assert.False(t, g.HasPrevious())
	})
}

func TestSetGet(t *testing.T) {
	g := newGrid(t, Planar(4, 3))
	require.NoError(t, g.Load(make([]tile.Type, 12)))

	require.NoError(t, g.Set(XY(3, 2), key))
	got, err := g.Get(XY(3, 2))
	require.NoError(t, err)
	assert.Equal(t, key, got)
	assert.Equal(t, key, g.Bordered().At(XY(4, 3)))

	assert.ErrorIs(t, g.Set(XY(4, 0), key), ErrOutOfBounds)
	assert.ErrorIs(t, g.Set(XY(-1, 0), key), ErrOutOfBounds)
	_, err = g.Get(XY(0, 3))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, tile.OutOfBounds, g.At(XY(0, 3)))
	assert.ErrorIs(t, g.Set(XY(0, 0), tile.Type(5)), ErrConfig)
}

func TestBorderedMirror(t *testing.T) {
	for _, shape := range []Shape{Planar(5, 4), Volume(3, 4, 2)} {
		g := newGrid(t, shape)
		require.NoError(t, g.Reset(rand.New(rand.NewSource(11)), map[tile.Type]float64{empty: 0.7, key: 0.3}, false))

		b := g.Bordered()
		bs := b.Shape()
		for i := 0; i < bs.Size(); i++ {
			c := bs.Coord(i)
			if bs.OnBoundary(c) {
				assert.Equal(t, solid, b.At(c), "border cell %v", c)
				continue
			}
			live := Coord{X: c.X - 1, Y: c.Y - 1}
			if shape.Is3D() {
				live.Z = c.Z - 1
			}
			assert.Equal(t, g.At(live), b.At(c), "mirror of %v", live)
		}
	}
}

func TestLoad(t *testing.T) {
	g := newGrid(t, Planar(2, 2))
	assert.ErrorIs(t, g.Load([]tile.Type{empty}), ErrConfig)
	assert.ErrorIs(t, g.Load([]tile.Type{empty, empty, empty, tile.Type(4)}), ErrConfig)

	cells := []tile.Type{empty, key, solid, empty}
	require.NoError(t, g.Load(cells))
	cells[0] = key
	assert.Equal(t, []tile.Type{empty, key, solid, empty}, g.Cells())
	assert.True(t, g.HasPrevious())
}

func TestDigHoles(t *testing.T) {
	// 6x6 live grid, 8x8 bordered.
	shape := Planar(6, 6)
	holes := Holes{
		Entry: [2]Coord{XY(0, 0), XY(1, 0)},
		Exit:  [2]Coord{XY(7, 7), XY(6, 7)},
	}

	t.Run("holes read as the hole tile after every reset", func(t *testing.T) {
		for name, h := range map[string]Holes{
			"along the top row":    holes,
			"down the left column": {Entry: [2]Coord{XY(0, 0), XY(0, 1)}, Exit: [2]Coord{XY(7, 7), XY(7, 6)}},
		} {
			g := newGrid(t, shape)
			rng := rand.New(rand.NewSource(2))
			require.NoError(t, g.Reset(rng, map[tile.Type]float64{solid: 1}, false), name)
			require.NoError(t, g.DigHoles(h, empty), name)

			for round := 0; round < 3; round++ {
				for _, c := range h.Cells() {
					assert.Equal(t, empty, g.Bordered().At(c), name)
				}
				assert.Equal(t, solid, g.Bordered().At(XY(0, 3)), name)
				require.NoError(t, g.Reset(rng, map[tile.Type]float64{solid: 0.5, key: 0.5}, round%2 == 0), name)
			}

			got, ok := g.Holes()
			require.True(t, ok, name)
			assert.Equal(t, h, got, name)
		}
	})

	t.Run("rejects bad geometry", func(t *testing.T) {
		g := newGrid(t, shape)
		for name, bad := range map[string]Holes{
			"interior":     {Entry: [2]Coord{XY(1, 1), XY(2, 1)}, Exit: holes.Exit},
			"outside":      {Entry: [2]Coord{XY(8, 0), XY(7, 0)}, Exit: holes.Exit},
			"not adjacent": {Entry: [2]Coord{XY(0, 0), XY(2, 0)}, Exit: holes.Exit},
		} {
			assert.ErrorIs(t, g.DigHoles(bad, empty), ErrConfig, name)
		}
		_, ok := g.Holes()
		assert.False(t, ok)
	})

	t.Run("default holes fit the bordered grid", func(t *testing.T) {
		for _, s := range []Shape{Planar(6, 6), Planar(3, 9), Planar(1, 1), Volume(4, 4, 4), Volume(1, 1, 1), Volume(2, 3, 5)} {
			assert.NoError(t, DefaultHoles(s).Validate(s.Padded()), "%v", s)
		}
	})

	t.Run("volume holes must reach the live cells", func(t *testing.T) {
		bordered := Volume(4, 4, 4).Padded()
		def := DefaultHoles(Volume(4, 4, 4))
		assert.Equal(t, [2]Coord{XYZ(1, 1, 0), XYZ(2, 1, 0)}, def.Entry)
		assert.Equal(t, [2]Coord{XYZ(4, 4, 5), XYZ(3, 4, 5)}, def.Exit)

		edge := Holes{Entry: [2]Coord{XYZ(0, 0, 0), XYZ(1, 0, 0)}, Exit: def.Exit}
		assert.ErrorIs(t, edge.Validate(bordered), ErrConfig)

		// One cell of the pair on the face is enough.
		mixed := Holes{Entry: [2]Coord{XYZ(0, 1, 0), XYZ(1, 1, 0)}, Exit: def.Exit}
		assert.NoError(t, mixed.Validate(bordered))
	})
}

func TestLocate(t *testing.T) {
	m, err := MapFromRows([][]tile.Type{
		{empty, key, solid},
		{key, empty, empty},
	})
	require.NoError(t, err)

	ix := Locate(m)
	assert.Equal(t, 2, ix.Count(key))
	assert.Equal(t, 5, ix.Count(key, empty))
	first, ok := ix.First(key)
	require.True(t, ok)
	assert.Equal(t, XY(1, 0), first)
	_, ok = ix.First(tile.Type(9))
	assert.False(t, ok)
	assert.Equal(t, []Coord{XY(1, 0), XY(0, 1), XY(2, 0)}, ix.All(key, solid))
}
