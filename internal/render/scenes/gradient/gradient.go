package gradient

import (
	"math"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

// Gradient spreads the palette across the frame slices of the layout, left
// to right, with optional animation.
// Params:
//   - "Speed" (slices per tick, default 0): scrolls the gradient
//   - "Rainbow" (0/1, default 0): sweep the hue wheel instead of the palette
type Gradient struct {
	name   string
	slices []layout.FrameSlice
	phase  float64
}

func New(name string) *Gradient { return &Gradient{name: name} }

func (g *Gradient) Name() string { return g.name }

func (g *Gradient) Presets() []string { return []string{"Static", "Flow", "Rainbow"} }

func (g *Gradient) ApplyPreset(name string, u *render.Uniforms) {
	if u == nil {
		return
	}
	switch name {
	case "Static":
		u.Assign(map[string]float64{"Speed": 0, "Rainbow": 0})
	case "Flow":
		u.Assign(map[string]float64{"Speed": 0.1, "Rainbow": 0})
	case "Rainbow":
		u.Assign(map[string]float64{"Speed": 0.1, "Rainbow": 1})
	}
}

func (g *Gradient) Init(c *render.Context) error {
	slices, err := layout.FrameSlices(c.Layout, c.Layout.GlobalOrientation)
	if err != nil {
		return err
	}
	g.slices, g.phase = slices, 0
	return nil
}

// ColourAt returns the colour of position f in [0,1) across the layout.
func ColourAt(p rgb.Palette, f float64, rainbow bool) rgb.RGB {
	f -= math.Floor(f)
	if rainbow {
		return rgb.HSVToRGB(rgb.HSV{H: int(f * 360), S: 100, V: 100})
	}
	if len(p) < 2 {
		return p.At(0)
	}
	// mirror so the scroll wraps without a seam
	m := 1 - math.Abs(2*f-1)
	return p.At(m * float64(len(p)-1))
}

func (g *Gradient) Render(dst []render.Frame, c *render.Context, _ *audio.Features) int {
	u := c.Uniforms
	rainbow := u.Param("Rainbow", 0) > 0.5
	n := len(g.slices)
	tt := c.TransTime()
	idx := 0
	for i, s := range g.slices {
		f := 0.0
		if n > 1 {
			f = float64(i) / float64(n)
		}
		col := ColourAt(c.Palette, f+g.phase/float64(max(n, 1)), rainbow)
		for _, id := range s.PanelIDs {
			if idx >= len(dst) {
				break
			}
			dst[idx] = render.Frame{PanelID: id, TransTime: tt}
			dst[idx].SetColor(col)
			idx++
		}
	}
	g.phase += u.Param("Speed", 0)
	return idx
}
