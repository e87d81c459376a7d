/*
Package tile defines the named tile-type sets that level problems are built from.

A tile type is a small integer code. Codes are assigned in the order the names are given to NewSet,
starting at zero. OutOfBounds is a distinguished code that never belongs to a set; it marks cells
outside a grid (for example in cropped observations) and must not be confused with the border tile,
which is an ordinary member of the set used to pad bordered grids.
*/
package tile

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Type is the code stored in a grid cell.
type Type int

// OutOfBounds marks a cell that lies outside the grid.
const OutOfBounds Type = -1

var (
	ErrUnknownTile   = errors.New("unknown tile type")
	ErrDuplicateTile = errors.New("duplicate tile type")
	ErrEmptyTileSet  = errors.New("tile set is empty")
)

// Set is an ordered, immutable collection of tile names.
type Set struct {
	names []string
	index map[string]Type
}

// NewSet creates a tile set from the given names. Codes follow argument order.
func NewSet(names ...string) (*Set, error) {
	if len(names) == 0 {
		return nil, ErrEmptyTileSet
	}

	index := make(map[string]Type, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty name at %d", ErrUnknownTile, i)
		}
		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTile, name)
		}
		index[name] = Type(i)
	}

	return &Set{
		names: append([]string(nil), names...),
		index: index,
	}, nil
}

// Len returns the number of tile types in the set.
func (s *Set) Len() int {
	return len(s.names)
}

// Names returns the tile names in code order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Valid reports whether t is a code of this set.
func (s *Set) Valid(t Type) bool {
	return t >= 0 && int(t) < len(s.names)
}

// Name returns the name of t, "out-of-bounds" for OutOfBounds and "" for unknown codes.
func (s *Set) Name(t Type) string {
	if t == OutOfBounds {
		return "out-of-bounds"
	}
	if !s.Valid(t) {
		return ""
	}
	return s.names[t]
}

// Type resolves a tile name to its code.
func (s *Set) Type(name string) (Type, error) {
	t, ok := s.index[name]
	if !ok {
		return OutOfBounds, fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	return t, nil
}

// Types resolves several names at once.
func (s *Set) Types(names ...string) ([]Type, error) {
	types := make([]Type, 0, len(names))
	for _, name := range names {
		t, err := s.Type(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// Passable builds the set of codes a connectivity or path query may traverse.
func (s *Set) Passable(names ...string) (mapset.Set[Type], error) {
	types, err := s.Types(names...)
	if err != nil {
		return mapset.Set[Type]{}, err
	}
	return SetOf(types...), nil
}

// SetOf collects tile codes into a mapset.
func SetOf(types ...Type) mapset.Set[Type] {
	set := mapset.New[Type]()
	for _, t := range types {
		set.Put(t)
	}
	return set
}
