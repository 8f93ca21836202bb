package render

import (
	"github.com/coreman2200/panelfx/internal/rgb"
	"github.com/coreman2200/panelfx/internal/source"
)

// RenderField writes one frame per panel, in layout order, coloured by the
// blended source field at the panel centroid.
func RenderField(dst []Frame, c *Context, st *source.Store, f source.Falloff, base rgb.RGB) int {
	n := min(len(dst), c.Layout.Count())
	tt := c.TransTime()
	for i := 0; i < n; i++ {
		p := &c.Layout.Panels[i]
		dst[i] = Frame{PanelID: p.ID, TransTime: tt}
		dst[i].SetColor(source.Blend(p.Shape.Centroid(), st, f, base))
	}
	return n
}

// Fill writes col to every panel.
func Fill(dst []Frame, c *Context, col rgb.RGB, transTime int) int {
	n := min(len(dst), c.Layout.Count())
	for i := 0; i < n; i++ {
		dst[i] = Frame{PanelID: c.Layout.Panels[i].ID, TransTime: transTime}
		dst[i].SetColor(col)
	}
	return n
}
