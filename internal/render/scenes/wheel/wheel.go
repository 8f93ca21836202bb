// Package wheel spins the hue wheel outward from the centre frame slice.
// Mirrored slices share a hue and each step outward shifts it by 15 degrees.
package wheel

import (
	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

const (
	DefaultTransTime = 15

	spatialStep  = 15
	temporalStep = 30
)

type Effect struct {
	name   string
	slices []layout.FrameSlice
	hue    int
}

func New(name string) *Effect { return &Effect{name: name} }

func (e *Effect) Name() string      { return e.name }
func (e *Effect) Presets() []string { return []string{"Default", "Snappy"} }

func (e *Effect) ApplyPreset(p string, u *render.Uniforms) {
	if u == nil {
		return
	}
	switch p {
	case "Snappy":
		u.Assign(map[string]float64{"WheelTransTime": 3})
	default:
		u.Assign(map[string]float64{"WheelTransTime": DefaultTransTime})
	}
}

// Init slices the layout as it is currently turned.
func (e *Effect) Init(c *render.Context) error {
	slices, err := layout.FrameSlices(c.Layout, c.Layout.GlobalOrientation)
	if err != nil {
		return err
	}
	e.slices, e.hue = slices, 0
	return nil
}

func (e *Effect) Slices() []layout.FrameSlice { return e.slices }

func (e *Effect) Render(dst []render.Frame, c *render.Context, _ *audio.Features) int {
	tt := int(c.Uniforms.Param("WheelTransTime", DefaultTransTime))
	idx := 0
	fill := func(s layout.FrameSlice, hue int) {
		col := rgb.HSVToRGB(rgb.HSV{H: hue % 360, S: 100, V: 100})
		for _, id := range s.PanelIDs {
			if idx >= len(dst) {
				return
			}
			dst[idx] = render.Frame{PanelID: id, TransTime: tt}
			dst[idx].SetColor(col)
			idx++
		}
	}

	n := len(e.slices)
	hue := e.hue
	if n%2 != 0 {
		fill(e.slices[n/2], hue)
		hue += spatialStep
	}
	for i := n/2 - 1; i >= 0; i-- {
		fill(e.slices[i], hue)
		fill(e.slices[n-1-i], hue)
		hue += spatialStep
	}

	e.hue += temporalStep
	if e.hue > 360 {
		e.hue = 0
	}
	return idx
}
