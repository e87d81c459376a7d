// Package region partitions passable cells of a lattice into connected components.
package region

import (
	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/zyedidia/generic/mapset"
)

// None labels cells that are not passable.
const None = 0

// Label assigns every passable cell the 1-based id of its 4- (or 6-) connected component.
// Components are discovered in row-major order. It returns the labels and the component count.
func Label(l grid.Lattice, passable mapset.Set[tile.Type]) ([]int, int) {
	shape := l.Shape()
	labels := make([]int, shape.Size())
	dirs := shape.Directions()

	count := 0
	var stack []grid.Coord
	for i := range labels {
		if labels[i] != None {
			continue
		}
		start := shape.Coord(i)
		if !passable.Has(l.At(start)) {
			continue
		}

		count++
		labels[i] = count
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			cell := pop(&stack)
			for _, d := range dirs {
				n := cell.Add(d)
				if !shape.Contains(n) {
					continue
				}
				ni := shape.Index(n)
				if labels[ni] != None || !passable.Has(l.At(n)) {
					continue
				}
				labels[ni] = count
				stack = append(stack, n)
			}
		}
	}

	return labels, count
}

// Count returns the number of connected components of passable cells.
func Count(l grid.Lattice, passable mapset.Set[tile.Type]) int {
	_, n := Label(l, passable)
	return n
}

// pop removes and returns the last element of the stack.
func pop(s *[]grid.Coord) grid.Coord {
	last := len(*s) - 1
	c := (*s)[last]
	*s = (*s)[:last]
	return c
}
