package layout

import (
	"math"

	"github.com/coreman2200/panelfx/internal/geometry"
)

// PanelIndex caches point lookups on a square grid. It must be rebuilt when
// the layout rotates.
type PanelIndex struct {
	cell  float64
	cache map[[2]int64]int
	l     *Layout
}

// NewPanelIndex returns an index quantizing queries to cells of size cell.
func NewPanelIndex(l *Layout, cell float64) *PanelIndex {
	if cell <= 0 {
		cell = 1
	}
	return &PanelIndex{cell: cell, cache: map[[2]int64]int{}, l: l}
}

// Lookup returns the id of the panel containing the cell center of p.
func (x *PanelIndex) Lookup(p geometry.Point) int {
	k := [2]int64{int64(math.Floor(p.X / x.cell)), int64(math.Floor(p.Y / x.cell))}
	if id, ok := x.cache[k]; ok {
		return id
	}
	c := geometry.Point{X: (float64(k[0]) + 0.5) * x.cell, Y: (float64(k[1]) + 0.5) * x.cell}
	id := PointInsideWhichPanel(x.l, c)
	x.cache[k] = id
	return id
}

// Bounds returns the min and max corners of all panel shapes.
func Bounds(l *Layout) (geometry.Point, geometry.Point) {
	if l == nil || len(l.Panels) == 0 {
		return geometry.Point{}, geometry.Point{}
	}
	r := l.Panels[0].Shape.Bounds()
	for i := 1; i < len(l.Panels); i++ {
		r.ExpandToContainRect(l.Panels[i].Shape.Bounds())
	}
	return geometry.Point{X: r.Min.X, Y: r.Min.Y}, geometry.Point{X: r.Max.X, Y: r.Max.Y}
}
