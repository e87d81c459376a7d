package grid

import "github.com/beka-birhanu/vinom-pcg/game/tile"

// Index maps each tile code to the coordinates holding it, in row-major scan order.
type Index map[tile.Type][]Coord

// Locate scans a lattice once and indexes every cell by tile code.
func Locate(l Lattice) Index {
	shape := l.Shape()
	ix := make(Index)
	for i := 0; i < shape.Size(); i++ {
		c := shape.Coord(i)
		t := l.At(c)
		ix[t] = append(ix[t], c)
	}
	return ix
}

// Count returns how many cells hold any of the given codes.
func (ix Index) Count(types ...tile.Type) int {
	n := 0
	for _, t := range types {
		n += len(ix[t])
	}
	return n
}

// First returns the first cell holding t in scan order.
func (ix Index) First(t tile.Type) (Coord, bool) {
	cs := ix[t]
	if len(cs) == 0 {
		return Coord{}, false
	}
	return cs[0], true
}

// All concatenates the cells holding any of the given codes, grouped in argument order.
func (ix Index) All(types ...tile.Type) []Coord {
	var cs []Coord
	for _, t := range types {
		cs = append(cs, ix[t]...)
	}
	return cs
}
