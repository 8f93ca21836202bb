package layout

import (
	"errors"
	"math"

	"github.com/coreman2200/panelfx/internal/geometry"
)

// NotFound is returned by lookups that match no panel.
const NotFound = -1

var (
	ErrNilLayout = errors.New("layout is nil")
	ErrNilAngle  = errors.New("angle is nil")
)

type Panel struct {
	ID    int
	Shape geometry.Shape
}

// Layout is the ordered set of panels of one installation. The panel order
// is stable; only Rotate mutates panel shapes.
type Layout struct {
	Panels            []Panel
	GlobalOrientation int
	SideLength        float64
}

// New copies panels into a layout. sideLength <= 0 selects the default.
func New(panels []Panel, globalOrientation int, sideLength float64) *Layout {
	if sideLength <= 0 {
		sideLength = geometry.DefaultSideLength
	}
	l := &Layout{
		Panels:            make([]Panel, len(panels)),
		GlobalOrientation: globalOrientation,
		SideLength:        sideLength,
	}
	copy(l.Panels, panels)
	return l
}

func (l *Layout) Count() int { return len(l.Panels) }

// GeometricCenter is the mean of the panel centroids.
func (l *Layout) GeometricCenter() geometry.Point {
	if len(l.Panels) == 0 {
		return geometry.Point{}
	}
	var sum geometry.Point
	for i := range l.Panels {
		sum = sum.Add(l.Panels[i].Shape.Centroid())
	}
	return sum.Scale(1 / float64(len(l.Panels)))
}

// AdjacentDistance is the centroid spacing of two edge-sharing triangles.
func (l *Layout) AdjacentDistance() float64 {
	return l.SideLength / math.Sqrt(3)
}

// Index returns the slice position of the panel with the given id, or
// NotFound.
func (l *Layout) Index(id int) int {
	for i := range l.Panels {
		if l.Panels[i].ID == id {
			return i
		}
	}
	return NotFound
}

// Centroids returns the panel centroids in panel order.
func (l *Layout) Centroids() []geometry.Point {
	out := make([]geometry.Point, len(l.Panels))
	for i := range l.Panels {
		out[i] = l.Panels[i].Shape.Centroid()
	}
	return out
}

// Clone returns a deep copy of the layout.
func (l *Layout) Clone() *Layout {
	return New(l.Panels, l.GlobalOrientation, l.SideLength)
}

// IsPointInsidePanel reports whether p lies within the panel's shape.
func IsPointInsidePanel(p *Panel, pt geometry.Point) bool {
	if p == nil {
		return false
	}
	return p.Shape.Contains(pt)
}

// PointInsideWhichPanel scans every panel and returns the id of the first
// one containing p, or NotFound. It is O(panels); repeated queries should go
// through a PanelIndex.
func PointInsideWhichPanel(l *Layout, p geometry.Point) int {
	if l == nil {
		return NotFound
	}
	for i := range l.Panels {
		if l.Panels[i].Shape.Contains(p) {
			return l.Panels[i].ID
		}
	}
	return NotFound
}
