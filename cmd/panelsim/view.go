package main

import (
	"github.com/coreman2200/panelfx/internal/geometry"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

// cellAspect is the height of a terminal cell over its width.
const cellAspect = 2.0

// view maps terminal cells onto layout coordinates. It caches the panel under
// every cell and must be rebuilt when the layout or the terminal changes.
type view struct {
	w, h   int
	origin geometry.Point
	scale  float64
	index  *layout.PanelIndex
	colour map[int]rgb.RGB
}

func newView(l *layout.Layout, w, h int) *view {
	v := &view{w: max(w, 1), h: max(h, 1), colour: map[int]rgb.RGB{}}
	lo, hi := layout.Bounds(l)
	sx := (hi.X - lo.X) / float64(v.w)
	sy := (hi.Y - lo.Y) / (float64(v.h) * cellAspect)
	v.scale = max(sx, sy, 1e-9)
	// centre the layout in the spare direction
	v.origin = geometry.Point{
		X: lo.X - (float64(v.w)*v.scale-(hi.X-lo.X))/2,
		Y: hi.Y + (float64(v.h)*v.scale*cellAspect-(hi.Y-lo.Y))/2,
	}
	v.index = layout.NewPanelIndex(l, v.scale)
	return v
}

// point is the layout position at the centre of cell x, y. Terminal rows
// grow downwards, layout y grows upwards.
func (v *view) point(x, y int) geometry.Point {
	return geometry.Point{
		X: v.origin.X + (float64(x)+0.5)*v.scale,
		Y: v.origin.Y - (float64(y)+0.5)*v.scale*cellAspect,
	}
}

// panel returns the id of the panel under cell x, y or layout.NotFound.
func (v *view) panel(x, y int) int {
	return v.index.Lookup(v.point(x, y))
}

func (v *view) update(frames []render.Frame) {
	for _, f := range frames {
		v.colour[f.PanelID] = f.Color()
	}
}

// at returns the colour under cell x, y and whether a panel is there.
func (v *view) at(x, y int) (rgb.RGB, bool) {
	id := v.panel(x, y)
	if id == layout.NotFound {
		return rgb.Black, false
	}
	return v.colour[id], true
}
