// Package soundbar draws a level meter across the widest axis of the layout.
// The bar jumps up with the energy and relaxes at a fixed rate, fading from
// the bar colour into the base colour towards its tip.
package soundbar

import (
	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

const (
	maxBarLength    = 100
	relaxStep       = 45
	colourHoldTicks = 30 * 1000 / 100
	minMaxEnergy    = 512
	gradientStart   = 450
	skipCount       = 1
)

type Effect struct {
	name     string
	slices   []layout.FrameSlice
	rotation int

	bar, base rgb.RGB
	colourIdx int
	colourAge int

	filter    audio.AveragingFilter
	maxEnergy float64
	primed    bool
	marker    int
	skip      int
}

func New(name string) *Effect { return &Effect{name: name} }

func (e *Effect) Name() string      { return e.name }
func (e *Effect) Presets() []string { return []string{"Default"} }

func (e *Effect) ApplyPreset(string, *render.Uniforms) {}

// Init turns the layout to its widest orientation and slices it.
func (e *Effect) Init(c *render.Context) error {
	rot, err := layout.MaxExpanse(c.Layout)
	if err != nil {
		return err
	}
	slices, err := layout.FrameSlices(c.Layout, c.Layout.GlobalOrientation)
	if err != nil {
		return err
	}
	e.rotation, e.slices = rot, slices
	c.Log.Debug().Str("effect", e.name).Int("rotation", rot).Int("slices", len(slices)).Msg("max expanse")

	switch len(c.Palette) {
	case 0:
		e.bar, e.base = rgb.White, rgb.Black
	case 1:
		e.bar, e.base = c.Palette[0], rgb.Black
	default:
		e.base, e.bar = c.Palette[0], c.Palette[1]
	}
	e.colourIdx, e.colourAge = 1, 0
	e.filter = audio.AveragingFilter{}
	e.primed, e.marker, e.skip = false, 0, 0
	return nil
}

// Rotation is the angle MaxExpanse settled on.
func (e *Effect) Rotation() int { return e.rotation }

func (e *Effect) Slices() []layout.FrameSlice { return e.slices }

// Marker is the current bar length in percent.
func (e *Effect) Marker() int { return e.marker }

func (e *Effect) Render(dst []render.Frame, c *render.Context, in *audio.Features) int {
	if e.skip < skipCount {
		e.skip++
		return 0
	}
	e.skip = 0

	e.cycleColour(c.Palette)

	var energy uint16
	if in != nil {
		energy = in.Energy
	}
	e.filter.Feed(energy)
	avg := e.filter.Average()
	if !e.primed {
		e.maxEnergy, e.primed = float64(energy), true
	}
	if avg > e.maxEnergy {
		e.maxEnergy /= 0.8
	} else {
		e.maxEnergy *= 0.8
	}
	if e.maxEnergy < minMaxEnergy {
		e.maxEnergy = minMaxEnergy
	}

	length := int(float64(energy) * maxBarLength / (2 * e.maxEnergy))
	if length > e.marker {
		e.marker = length
	}
	affected := min(e.marker*len(e.slices)/maxBarLength, len(e.slices))

	idx := 0
	put := func(s layout.FrameSlice, col rgb.RGB) {
		for _, id := range s.PanelIDs {
			if idx >= len(dst) {
				return
			}
			dst[idx] = render.Frame{PanelID: id, TransTime: render.DefaultTransTime}
			dst[idx].SetColor(col)
			idx++
		}
	}

	x, step := gradientStart, 0
	if affected > 0 {
		step = gradientStart / affected
	}
	for i := 0; i < affected; i++ {
		x -= step
		xt := min(x, 255)
		col := e.bar.Mul(xt).Div(255).Add(e.base.Mul(255 - xt).Div(255))
		put(e.slices[i], col.Clamp())
	}
	for i := affected; i < len(e.slices); i++ {
		put(e.slices[i], e.base)
	}

	if e.marker > 0 {
		e.marker = max(e.marker-relaxStep, 0)
	}
	return idx
}

// cycleColour walks the bar through palette entries 1..n-1, holding each
// for colourHoldTicks rendered frames.
func (e *Effect) cycleColour(p rgb.Palette) {
	if len(p) < 2 {
		return
	}
	if e.colourAge >= colourHoldTicks {
		if e.colourIdx >= len(p) {
			e.colourIdx = 1
		}
		e.bar = p[e.colourIdx]
		e.colourIdx++
		e.colourAge = 0
	}
	e.colourAge++
}
