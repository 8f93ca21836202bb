// Package soda releases bubbles from the bottom edge of the layout that rise
// straight up. Beats release bright bubbles coloured by the recent dominant
// frequency, onsets release faint slow ones.
package soda

import (
	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/geometry"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
	"github.com/coreman2200/panelfx/internal/source"
)

const (
	MaxStartPoints = 30
	BubbleRadius   = 0.2

	beatSpeed      = 0.4
	onsetIntensity = 0.3
	onsetSpeed     = 0.3
)

type Effect struct {
	name   string
	store  *source.Store
	starts []geometry.Point
	avg    audio.DominantAverager
	radius float64
}

func New(name string) *Effect { return &Effect{name: name} }

func (e *Effect) Name() string      { return e.name }
func (e *Effect) Presets() []string { return []string{"Default", "Fizzy"} }

func (e *Effect) ApplyPreset(p string, u *render.Uniforms) {
	if u == nil {
		return
	}
	switch p {
	case "Fizzy":
		u.Assign(map[string]float64{"MaxSources": 20, "BubbleRadius": 0.1})
	default:
		u.Assign(map[string]float64{"MaxSources": 10, "BubbleRadius": BubbleRadius})
	}
}

func (e *Effect) Init(c *render.Context) error {
	e.store = source.NewStore(int(c.Uniforms.Param("MaxSources", 10)), source.Insertion)
	e.radius = c.Uniforms.Param("BubbleRadius", BubbleRadius)
	e.starts = source.BubbleStartPoints(c.Layout, MaxStartPoints)
	e.avg = audio.DominantAverager{}
	c.Log.Debug().Str("effect", e.name).Int("starts", len(e.starts)).Msg("start points")
	return nil
}

// StartPoints are the panel centroids bubbles rise from.
func (e *Effect) StartPoints() []geometry.Point { return e.starts }

func (e *Effect) Sources() []source.Source { return e.store.Sources() }

func (e *Effect) Render(dst []render.Frame, c *render.Context, in *audio.Features) int {
	if in != nil {
		e.avg.Feed(in.FFT)
		switch {
		case in.IsBeat:
			idx := audio.SpectrumColour(e.avg.Take(), len(in.FFT), len(c.Palette))
			e.spawn(c, c.Palette.At(idx), 1, beatSpeed)
		case in.IsOnset:
			e.spawn(c, c.Palette.At(0), onsetIntensity, onsetSpeed)
		}
	}
	adj := c.Layout.AdjacentDistance()
	n := render.RenderField(dst, c, e.store, source.Bubble{Radius: adj}, rgb.Black)
	source.Propagate(e.store, source.EscapeRadius*adj)
	return n
}

// spawn starts a bubble one diameter below a random start point, moving up
// speed adjacent spacings per tick.
func (e *Effect) spawn(c *render.Context, col rgb.RGB, intensity, speed float64) {
	if len(e.starts) == 0 {
		return
	}
	adj := c.Layout.AdjacentDistance()
	p := e.starts[c.Rand.Intn(len(e.starts))]
	p.Y -= e.radius * 2 * adj
	e.store.Push(source.Source{
		Pos:       p,
		Vel:       geometry.Point{Y: speed * adj},
		Color:     col.Scale(intensity),
		Speed:     speed,
		Intensity: intensity,
		Radius:    e.radius,
	})
}
