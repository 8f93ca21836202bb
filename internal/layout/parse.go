package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/coreman2200/panelfx/internal/geometry"
)

// StreamStride is the number of ints per panel in a position stream:
// id, x, y, orientation, shape type.
const StreamStride = 5

var ErrStreamLength = errors.New("position stream length is not a multiple of 5")

// Parse builds a layout from a flat position stream.
func Parse(stream []int, sideLength float64) (*Layout, error) {
	if len(stream)%StreamStride != 0 {
		return nil, ErrStreamLength
	}
	if sideLength <= 0 {
		sideLength = geometry.DefaultSideLength
	}
	panels := make([]Panel, 0, len(stream)/StreamStride)
	for i := 0; i < len(stream); i += StreamStride {
		id, x, y, o, kind := stream[i], stream[i+1], stream[i+2], stream[i+3], stream[i+4]
		s, err := geometry.NewShape(geometry.Kind(kind), geometry.Point{X: float64(x), Y: float64(y)}, o, sideLength)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", id, err)
		}
		panels = append(panels, Panel{ID: id, Shape: s})
	}
	return New(panels, 0, sideLength), nil
}

// Triangles lays out n triangles edge to edge in a horizontal strip,
// alternating apex up and apex down. Ids start at firstID.
func Triangles(n, firstID int, sideLength float64) *Layout {
	if sideLength <= 0 {
		sideLength = geometry.DefaultSideLength
	}
	panels := make([]Panel, 0, n)
	inset := sideLength / (2 * math.Sqrt(3))
	for i := 0; i < n; i++ {
		c := geometry.Point{X: float64(i) * sideLength / 2}
		o := 0
		if i%2 == 1 {
			// apex down triangles share the upper edge line
			c.Y = inset
			o = 60
		}
		s, _ := geometry.NewShape(geometry.Triangle, c, o, sideLength)
		panels = append(panels, Panel{ID: firstID + i, Shape: s})
	}
	return New(panels, 0, sideLength)
}
