/*
Package maze carves perfect mazes into planar tile maps with Wilson's algorithm.

Rooms sit on even coordinates and the cells between two rooms are walls until a walk opens
them. On odd extents the last row or column stays solid. Every pair of rooms is joined by
exactly one path, which makes a carved map a fully connected starting level.
*/
package maze

import (
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
)

// Carve returns a width x height map of wall with a maze of open tiles cut into it.
func Carve(shape grid.Shape, rng *rand.Rand, open, wall tile.Type) (*grid.Map, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.Is3D() {
		return nil, fmt.Errorf("%w: mazes are planar", grid.ErrConfig)
	}

	rooms := grid.Planar((shape.Width+1)/2, (shape.Height+1)/2)
	m := grid.NewMap(shape, wall)
	w := &walker{rooms: rooms, rng: rng}

	visited := make([]bool, rooms.Size())
	start := w.randomRoom()
	visited[rooms.Index(start)] = true
	left := rooms.Size() - 1
	if err := m.Put(toCell(start), open); err != nil {
		return nil, err
	}

	for left > 0 {
		for _, step := range w.walk(visited) {
			for _, c := range []grid.Coord{toCell(step.from), between(step.from, step.to)} {
				if err := m.Put(c, open); err != nil {
					return nil, err
				}
			}
			if !visited[rooms.Index(step.from)] {
				visited[rooms.Index(step.from)] = true
				left--
			}
		}
	}
	return m, nil
}

type move struct {
	from, to grid.Coord
}

type walker struct {
	rooms grid.Shape
	rng   *rand.Rand
}

func (w *walker) randomRoom() grid.Coord {
	return w.rooms.Coord(w.rng.Intn(w.rooms.Size()))
}

// walk performs a loop-erased random walk from an unvisited room until it hits the maze and
// returns the surviving moves in walk order.
func (w *walker) walk(visited []bool) []move {
	start := w.randomRoom()
	for visited[w.rooms.Index(start)] {
		start = w.randomRoom()
	}

	exits := make(map[grid.Coord]grid.Coord)
	cell := start
	for {
		ns := w.neighbors(cell)
		next := ns[w.rng.Intn(len(ns))]
		exits[cell] = next // later visits overwrite, which erases loops
		if visited[w.rooms.Index(next)] {
			break
		}
		cell = next
	}

	var path []move
	for cell = start; ; {
		next := exits[cell]
		path = append(path, move{from: cell, to: next})
		if visited[w.rooms.Index(next)] {
			return path
		}
		cell = next
	}
}

func (w *walker) neighbors(c grid.Coord) []grid.Coord {
	var ns []grid.Coord
	for _, d := range w.rooms.Directions() {
		if n := c.Add(d); w.rooms.Contains(n) {
			ns = append(ns, n)
		}
	}
	return ns
}

func toCell(room grid.Coord) grid.Coord {
	return grid.XY(room.X*2, room.Y*2)
}

func between(a, b grid.Coord) grid.Coord {
	return grid.XY(a.X+b.X, a.Y+b.Y)
}
