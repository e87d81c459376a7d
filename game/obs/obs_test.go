package obs

import (
	"testing"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oob = tile.OutOfBounds

func TestCrop(t *testing.T) {
	m, err := grid.MapFromRows([][]tile.Type{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 0},
	})
	require.NoError(t, err)

	t.Run("centred inside", func(t *testing.T) {
		c, err := Crop(m, grid.XY(1, 1), 3)
		require.NoError(t, err)
		assert.Equal(t, m.Cells(), c.Cells())
	})

	t.Run("corner pads out of bounds", func(t *testing.T) {
		c, err := Crop(m, grid.XY(0, 0), 3)
		require.NoError(t, err)
		assert.Equal(t, []tile.Type{
			oob, oob, oob,
			oob, 0, 1,
			oob, 3, 4,
		}, c.Cells())
	})

	t.Run("even window leans to origin", func(t *testing.T) {
		c, err := Crop(m, grid.XY(2, 2), 2)
		require.NoError(t, err)
		assert.Equal(t, grid.Planar(2, 2), c.Shape())
		assert.Equal(t, []tile.Type{4, 5, 7, 0}, c.Cells())
	})

	t.Run("window larger than the map", func(t *testing.T) {
		c, err := Crop(m, grid.XY(1, 1), 5)
		require.NoError(t, err)
		ix := grid.Locate(c)
		assert.Equal(t, 16, ix.Count(oob))
	})

	t.Run("rejects empty window", func(t *testing.T) {
		_, err := Crop(m, grid.XY(1, 1), 0)
		assert.ErrorIs(t, err, grid.ErrConfig)
	})

	t.Run("rejects windows far larger than the map", func(t *testing.T) {
		c, err := Crop(m, grid.XY(1, 1), 7)
		require.NoError(t, err)
		assert.Equal(t, grid.Planar(7, 7), c.Shape())

		for _, window := range []int{8, 1 << 32} {
			_, err := Crop(m, grid.XY(1, 1), window)
			assert.ErrorIs(t, err, grid.ErrConfig, "window %d", window)
		}
	})
}

func TestCropVolume(t *testing.T) {
	shape := grid.Volume(2, 2, 2)
	cells := []tile.Type{1, 1, 1, 1, 2, 2, 2, 2}
	v, err := grid.MapFromCells(shape, cells)
	require.NoError(t, err)

	c, err := Crop(v, grid.XYZ(1, 1, 1), 3)
	require.NoError(t, err)
	assert.Equal(t, grid.Volume(3, 3, 3), c.Shape())
	assert.Equal(t, tile.Type(1), c.At(grid.XYZ(0, 0, 0)))
	assert.Equal(t, tile.Type(2), c.At(grid.XYZ(1, 1, 1)))
	assert.Equal(t, oob, c.At(grid.XYZ(2, 2, 2)))
}

func TestOneHot(t *testing.T) {
	m, err := grid.MapFromRows([][]tile.Type{{0, 2}, {oob, 7}})
	require.NoError(t, err)

	assert.Equal(t, []float32{
		1, 0, 0,
		0, 0, 1,
		0, 0, 0,
		0, 0, 0,
	}, OneHot(m, 3))
}
