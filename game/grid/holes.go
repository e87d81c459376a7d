package grid

import "fmt"

// Holes are an entrance and an exit cut through the border of a bordered grid.
// Each opening is two adjacent cells on the bordered boundary, in bordered coordinates.
type Holes struct {
	Entry [2]Coord `json:"entry" bson:"entry"`
	Exit  [2]Coord `json:"exit" bson:"exit"`
}

// Cells lists the four hole cells, entry first.
func (h Holes) Cells() []Coord {
	return []Coord{h.Entry[0], h.Entry[1], h.Exit[0], h.Exit[1]}
}

// Validate checks that every cell lies on the boundary of the bordered shape, that the two
// cells of each opening are adjacent and that each opening touches a live cell.
func (h Holes) Validate(bordered Shape) error {
	for _, pair := range [][2]Coord{h.Entry, h.Exit} {
		for _, c := range pair {
			if !bordered.Contains(c) {
				return fmt.Errorf("%w: hole %v outside bordered grid %dx%dx%d", ErrConfig, c, bordered.Width, bordered.Height, bordered.Depth)
			}
			if !bordered.OnBoundary(c) {
				return fmt.Errorf("%w: hole %v is not on the border", ErrConfig, c)
			}
		}
		if pair[0].Manhattan(pair[1]) != 1 {
			return fmt.Errorf("%w: hole cells %v and %v are not adjacent", ErrConfig, pair[0], pair[1])
		}
		if !touchesLive(bordered, pair[0]) && !touchesLive(bordered, pair[1]) {
			return fmt.Errorf("%w: hole %v-%v does not reach the live grid", ErrConfig, pair[0], pair[1])
		}
	}
	return nil
}

// touchesLive reports whether a border cell of the bordered shape has a live neighbour.
func touchesLive(bordered Shape, c Coord) bool {
	for _, d := range bordered.Directions() {
		n := c.Add(d)
		if bordered.Contains(n) && !bordered.OnBoundary(n) {
			return true
		}
	}
	return false
}

// DefaultHoles opens the top-left corner and the bottom-right corner of the bordered grid of
// a live shape. Volumes open the first and last depth faces instead.
func DefaultHoles(live Shape) Holes {
	p := live.Padded()
	if live.Is3D() {
		back := Coord{X: live.Width, Y: live.Height, Z: p.Depth - 1}
		return Holes{
			Entry: [2]Coord{{X: 1, Y: 1}, {X: 2, Y: 1}},
			Exit:  [2]Coord{back, {X: back.X - 1, Y: back.Y, Z: back.Z}},
		}
	}
	last := Coord{X: p.Width - 1, Y: p.Height - 1}
	return Holes{
		Entry: [2]Coord{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Exit:  [2]Coord{last, {X: last.X - 1, Y: last.Y, Z: last.Z}},
	}
}
