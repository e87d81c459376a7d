package grid

import (
	"testing"

	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/stretchr/testify/assert"
)

func TestShapeIndexRoundTrip(t *testing.T) {
	for _, s := range []Shape{Planar(1, 1), Planar(7, 3), Volume(4, 3, 5)} {
		for i := 0; i < s.Size(); i++ {
			c := s.Coord(i)
			assert.True(t, s.Contains(c))
			assert.Equal(t, i, s.Index(c))
		}
	}
}

func TestShapeDirections(t *testing.T) {
	assert.Len(t, Planar(3, 3).Directions(), 4)
	assert.Len(t, Volume(3, 3, 3).Directions(), 6)
	for _, d := range Volume(3, 3, 3).Directions() {
		assert.Equal(t, 1, d.Manhattan(Coord{}))
	}
}

func TestShapeBoundary(t *testing.T) {
	s := Planar(4, 3)
	assert.True(t, s.OnBoundary(XY(0, 1)))
	assert.True(t, s.OnBoundary(XY(3, 2)))
	assert.False(t, s.OnBoundary(XY(1, 1)))
	assert.False(t, s.OnBoundary(XY(4, 1)))

	v := Volume(3, 3, 3)
	assert.True(t, v.OnBoundary(XYZ(1, 1, 0)))
	assert.False(t, v.OnBoundary(XYZ(1, 1, 1)))
	assert.Equal(t, Volume(5, 5, 5), v.Padded())
	assert.Equal(t, XYZ(1, 1, 1), v.Offset())
}

func TestMapPadAndString(t *testing.T) {
	m, err := MapFromRows([][]tile.Type{{0, 1}, {1, 0}})
	assert.NoError(t, err)
	p := m.Pad(2)
	assert.Equal(t, Planar(4, 4), p.Shape())
	assert.Equal(t, tile.Type(1), p.At(XY(2, 1)))
	assert.Equal(t, tile.Type(2), p.At(XY(0, 0)))
	assert.Equal(t, "0 1\n1 0\n", m.String())

	_, err = MapFromRows([][]tile.Type{{0, 1}, {1}})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestShapeValidate(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		ok    bool
	}{
		{"planar", Planar(8, 8), true},
		{"volume", Volume(2, 3, 4), true},
		{"at the cap", Planar(1<<12, 1<<12), true},
		{"zero width", Planar(0, 4), false},
		{"negative depth", Shape{Width: 2, Height: 2, Depth: -1}, false},
		{"over the cap", Volume(1<<12, 1<<12, 2), false},
		{"size would wrap", Planar(1<<32, 1<<32), false},
		{"one huge axis", Planar(MaxCells+1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shape.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrConfig)
		})
	}

	_, err := New(Planar(1<<32, 1<<32), nil, 0)
	assert.ErrorIs(t, err, ErrConfig)
}
