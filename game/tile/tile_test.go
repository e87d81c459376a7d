package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet(t *testing.T) {
	t.Run("codes follow argument order", func(t *testing.T) {
		s, err := NewSet("empty", "solid", "player")
		require.NoError(t, err)

		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"empty", "solid", "player"}, s.Names())
		for want, name := range []string{"empty", "solid", "player"} {
			got, err := s.Type(name)
			require.NoError(t, err)
			assert.Equal(t, Type(want), got)
			assert.Equal(t, name, s.Name(got))
		}
	})

	t.Run("rejects empty and duplicate sets", func(t *testing.T) {
		_, err := NewSet()
		assert.ErrorIs(t, err, ErrEmptyTileSet)

		_, err = NewSet("empty", "empty")
		assert.ErrorIs(t, err, ErrDuplicateTile)

		_, err = NewSet("empty", "")
		assert.ErrorIs(t, err, ErrUnknownTile)
	})
}

func TestOutOfBounds(t *testing.T) {
	s, err := NewSet("empty", "solid")
	require.NoError(t, err)

	assert.False(t, s.Valid(OutOfBounds))
	assert.False(t, s.Valid(Type(2)))
	assert.Equal(t, "out-of-bounds", s.Name(OutOfBounds))
	assert.Equal(t, "", s.Name(Type(7)))
}

func TestPassable(t *testing.T) {
	s, err := NewSet("empty", "solid", "key")
	require.NoError(t, err)

	set, err := s.Passable("empty", "key")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Size())
	assert.True(t, set.Has(0))
	assert.False(t, set.Has(1))
	assert.True(t, set.Has(2))
	assert.False(t, set.Has(OutOfBounds))

	_, err = s.Passable("empty", "lava")
	assert.ErrorIs(t, err, ErrUnknownTile)
}
