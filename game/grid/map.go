package grid

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-pcg/game/tile"
)

// Lattice is a read-only view of tile codes laid out on a shape.
// At returns tile.OutOfBounds for coordinates outside the shape.
type Lattice interface {
	Shape() Shape
	At(c Coord) tile.Type
}

// Map is a dense block of tile codes.
type Map struct {
	shape Shape
	cells []tile.Type
}

// NewMap allocates a map of the given shape with every cell set to fill.
func NewMap(shape Shape, fill tile.Type) *Map {
	cells := make([]tile.Type, shape.Size())
	for i := range cells {
		cells[i] = fill
	}
	return &Map{shape: shape, cells: cells}
}

// MapFromCells wraps a copy of cells laid out in row-major order.
func MapFromCells(shape Shape, cells []tile.Type) (*Map, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(cells) != shape.Size() {
		return nil, fmt.Errorf("%w: %d cells for a shape of %d", ErrConfig, len(cells), shape.Size())
	}
	return &Map{shape: shape, cells: append([]tile.Type(nil), cells...)}, nil
}

// MapFromRows builds a planar map from rows of codes, top row first.
func MapFromRows(rows [][]tile.Type) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrConfig)
	}
	shape := Planar(len(rows[0]), len(rows))
	cells := make([]tile.Type, 0, shape.Size())
	for y, row := range rows {
		if len(row) != shape.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrConfig, y, len(row), shape.Width)
		}
		cells = append(cells, row...)
	}
	return MapFromCells(shape, cells)
}

// Shape implements Lattice.
func (m *Map) Shape() Shape {
	return m.shape
}

// At implements Lattice.
func (m *Map) At(c Coord) tile.Type {
	if !m.shape.Contains(c) {
		return tile.OutOfBounds
	}
	return m.cells[m.shape.Index(c)]
}

// Put writes one cell.
func (m *Map) Put(c Coord, t tile.Type) error {
	if !m.shape.Contains(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	m.cells[m.shape.Index(c)] = t
	return nil
}

// Cells returns a copy of the cells in row-major order.
func (m *Map) Cells() []tile.Type {
	return append([]tile.Type(nil), m.cells...)
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	return &Map{shape: m.shape, cells: append([]tile.Type(nil), m.cells...)}
}

// Equal reports whether both maps have the same shape and cells.
func (m *Map) Equal(o *Map) bool {
	if o == nil || m.shape != o.shape {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Pad returns a copy of m surrounded by one cell of border on every active axis.
func (m *Map) Pad(border tile.Type) *Map {
	padded := NewMap(m.shape.Padded(), border)
	offset := m.shape.Offset()
	for i, t := range m.cells {
		c := m.shape.Coord(i).Add(offset)
		padded.cells[padded.shape.Index(c)] = t
	}
	return padded
}

// String renders the map one row per line, planes separated by a blank line.
func (m *Map) String() string {
	var sb strings.Builder
	for z := 0; z < m.shape.layers(); z++ {
		if z > 0 {
			sb.WriteString("\n")
		}
		for y := 0; y < m.shape.Height; y++ {
			for x := 0; x < m.shape.Width; x++ {
				if x > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%d", m.At(XYZ(x, y, z)))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
