package grid

import "fmt"

// Coord addresses a cell. Z is always zero on planar grids.
type Coord struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
	Z int `json:"z" bson:"z"`
}

// XY builds a planar coordinate.
func XY(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// XYZ builds a volumetric coordinate.
func XYZ(x, y, z int) Coord {
	return Coord{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Manhattan returns the L1 distance between two coordinates.
func (c Coord) Manhattan(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y) + abs(c.Z-o.Z)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Shape is the extent of a grid. A zero Depth means a planar (2D) grid.
type Shape struct {
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
	Depth  int `json:"depth" bson:"depth"`
}

// Planar returns the shape of a width x height grid.
func Planar(width, height int) Shape {
	return Shape{Width: width, Height: height}
}

// Volume returns the shape of a width x height x depth grid.
func Volume(width, height, depth int) Shape {
	return Shape{Width: width, Height: height, Depth: depth}
}

// Is3D reports whether the shape has a depth axis.
func (s Shape) Is3D() bool {
	return s.Depth > 0
}

// MaxCells is the largest cell count a shape may hold.
const MaxCells = 1 << 24

// Validate checks that every active axis is at least one cell long and that the shape holds at
// most MaxCells cells.
func (s Shape) Validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.Depth < 0 {
		return fmt.Errorf("%w: invalid shape %dx%dx%d", ErrConfig, s.Width, s.Height, s.Depth)
	}
	n := 1
	for _, axis := range []int{s.Width, s.Height, s.layers()} {
		if axis > MaxCells/n {
			return fmt.Errorf("%w: shape %dx%dx%d exceeds %d cells", ErrConfig, s.Width, s.Height, s.Depth, MaxCells)
		}
		n *= axis
	}
	return nil
}

// layers is the number of planes along Z.
func (s Shape) layers() int {
	if s.Depth > 0 {
		return s.Depth
	}
	return 1
}

// Size returns the number of cells.
func (s Shape) Size() int {
	return s.Width * s.Height * s.layers()
}

// Contains reports whether c lies inside the shape.
func (s Shape) Contains(c Coord) bool {
	return c.X >= 0 && c.X < s.Width &&
		c.Y >= 0 && c.Y < s.Height &&
		c.Z >= 0 && c.Z < s.layers()
}

// Index maps a coordinate to its row-major flat index (x fastest, then y, then z).
func (s Shape) Index(c Coord) int {
	return (c.Z*s.Height+c.Y)*s.Width + c.X
}

// Coord maps a flat index back to a coordinate.
func (s Shape) Coord(i int) Coord {
	plane := s.Width * s.Height
	return Coord{
		X: i % s.Width,
		Y: (i % plane) / s.Width,
		Z: i / plane,
	}
}

// Padded returns the shape grown by one cell on both ends of every active axis.
func (s Shape) Padded() Shape {
	p := Shape{Width: s.Width + 2, Height: s.Height + 2}
	if s.Is3D() {
		p.Depth = s.Depth + 2
	}
	return p
}

// Offset is the translation from live coordinates into padded coordinates.
func (s Shape) Offset() Coord {
	if s.Is3D() {
		return Coord{X: 1, Y: 1, Z: 1}
	}
	return Coord{X: 1, Y: 1}
}

// OnBoundary reports whether c lies on the outermost layer of the shape.
func (s Shape) OnBoundary(c Coord) bool {
	if !s.Contains(c) {
		return false
	}
	if c.X == 0 || c.X == s.Width-1 || c.Y == 0 || c.Y == s.Height-1 {
		return true
	}
	return s.Is3D() && (c.Z == 0 || c.Z == s.Depth-1)
}

var (
	planarDirections = []Coord{
		{X: -1}, {X: 1}, {Y: -1}, {Y: 1},
	}
	volumeDirections = []Coord{
		{X: -1}, {X: 1}, {Y: -1}, {Y: 1}, {Z: -1}, {Z: 1},
	}
)

// Directions returns the unit offsets of the 4- (planar) or 6- (volume) neighbourhood.
// The returned slice must not be modified.
func (s Shape) Directions() []Coord {
	if s.Is3D() {
		return volumeDirections
	}
	return planarDirections
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
