// Package obs shapes grid contents into the observations handed to a controller.
package obs

import (
	"fmt"

	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
)

// Crop returns the window x window (x window on volumes) block of l centred on center.
// Cells outside l read as tile.OutOfBounds. Even windows lean toward the origin. The window
// may not exceed twice the longest axis of l plus one.
func Crop(l grid.Lattice, center grid.Coord, window int) (*grid.Map, error) {
	src := l.Shape()
	if window <= 0 || window > 2*max(src.Width, src.Height, src.Depth)+1 {
		return nil, fmt.Errorf("%w: crop window %d", grid.ErrConfig, window)
	}

	shape := grid.Planar(window, window)
	corner := grid.XY(center.X-window/2, center.Y-window/2)
	if src.Is3D() {
		shape = grid.Volume(window, window, window)
		corner.Z = center.Z - window/2
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	out := grid.NewMap(shape, tile.OutOfBounds)
	for i := 0; i < shape.Size(); i++ {
		c := shape.Coord(i)
		if err := out.Put(c, l.At(c.Add(corner))); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// OneHot encodes l cell by cell with one channel per tile code, channels innermost.
// tile.OutOfBounds and codes at or above numTiles encode as all zeros.
func OneHot(l grid.Lattice, numTiles int) []float32 {
	shape := l.Shape()
	out := make([]float32, shape.Size()*numTiles)
	for i := 0; i < shape.Size(); i++ {
		t := int(l.At(shape.Coord(i)))
		if t < 0 || t >= numTiles {
			continue
		}
		out[i*numTiles+t] = 1
	}
	return out
}
