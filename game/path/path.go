/*
Package path computes unit-cost shortest-path distance fields on a lattice.

A Field is produced from one source under one passable set. Distances grow by one per step through
the 4- (planar) or 6- (volume) neighbourhood; cells that cannot be reached hold Unreached. Paths
are reconstructed by walking strictly decreasing distances back to the source.
*/
package path

import (
	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
	"github.com/zyedidia/generic/mapset"
)

// Unreached is the distance of cells the expansion never visited.
const Unreached = -1

// Field stores the distance of every cell from a single source.
type Field struct {
	shape  grid.Shape
	source grid.Coord
	dist   []int
}

// Dijkstra expands from source through cells whose tile is passable. The source itself is
// always at distance zero when it lies inside the lattice; an outside source reaches nothing.
func Dijkstra(l grid.Lattice, source grid.Coord, passable mapset.Set[tile.Type]) *Field {
	shape := l.Shape()
	f := &Field{
		shape:  shape,
		source: source,
		dist:   make([]int, shape.Size()),
	}
	for i := range f.dist {
		f.dist[i] = Unreached
	}
	if !shape.Contains(source) {
		return f
	}

	dirs := shape.Directions()
	queue := make([]grid.Coord, 0, shape.Size()/4+1)
	f.dist[shape.Index(source)] = 0
	queue = append(queue, source)

	for head := 0; head < len(queue); head++ {
		cell := queue[head]
		d := f.dist[shape.Index(cell)]
		for _, dir := range dirs {
			n := cell.Add(dir)
			if !shape.Contains(n) {
				continue
			}
			ni := shape.Index(n)
			if f.dist[ni] != Unreached || !passable.Has(l.At(n)) {
				continue
			}
			f.dist[ni] = d + 1
			queue = append(queue, n)
		}
	}

	return f
}

// Shape returns the shape the field was computed on.
func (f *Field) Shape() grid.Shape {
	return f.shape
}

// Source returns the coordinate the expansion started from.
func (f *Field) Source() grid.Coord {
	return f.source
}

// At returns the distance of c, Unreached for unreached or outside cells.
func (f *Field) At(c grid.Coord) int {
	if !f.shape.Contains(c) {
		return Unreached
	}
	return f.dist[f.shape.Index(c)]
}

// Reached reports whether c has a finite distance.
func (f *Field) Reached(c grid.Coord) bool {
	return f.At(c) != Unreached
}

// Farthest returns the first cell in scan order holding the largest distance.
func (f *Field) Farthest() (grid.Coord, int) {
	best, bestDist := f.source, Unreached
	for i, d := range f.dist {
		if d > bestDist {
			best, bestDist = f.shape.Coord(i), d
		}
	}
	return best, bestDist
}

// PathTo walks from target back to the source, stepping to a neighbour with a strictly smaller
// distance each time. The result starts at target and ends at the source, so its length is
// At(target)+1. It is empty when target was not reached.
func (f *Field) PathTo(target grid.Coord) []grid.Coord {
	d := f.At(target)
	if d == Unreached {
		return nil
	}

	dirs := f.shape.Directions()
	path := make([]grid.Coord, 0, d+1)
	cell := target
	path = append(path, cell)
	for d > 0 {
		next, found := cell, false
		for _, dir := range dirs {
			n := cell.Add(dir)
			if nd := f.At(n); nd != Unreached && nd < d {
				next, d, found = n, nd, true
				break
			}
		}
		if !found {
			return nil
		}
		cell = next
		path = append(path, cell)
	}
	return path
}

// Longest returns the longest shortest path among all components of passable cells, found by a
// double sweep per component, together with the path itself from one end to the other.
func Longest(l grid.Lattice, passable mapset.Set[tile.Type]) (int, []grid.Coord) {
	shape := l.Shape()
	visited := make([]bool, shape.Size())

	longest := 0
	var longestPath []grid.Coord
	for i := range visited {
		if visited[i] {
			continue
		}
		start := shape.Coord(i)
		if !passable.Has(l.At(start)) {
			continue
		}

		first := Dijkstra(l, start, passable)
		for j, d := range first.dist {
			if d != Unreached {
				visited[j] = true
			}
		}

		end, _ := first.Farthest()
		second := Dijkstra(l, end, passable)
		far, dist := second.Farthest()
		if dist > longest {
			longest = dist
			longestPath = second.PathTo(far)
		}
	}
	return longest, longestPath
}
