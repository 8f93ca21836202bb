// Package freqstars gives every palette colour its own FFT bin. A beat in a
// bin launches a shooting star of that colour whose brightness is the beat
// strength relative to the loudest the bin has been.
package freqstars

import (
	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
	"github.com/coreman2200/panelfx/internal/source"
)

// MaxColours caps both the palette and the number of tracked bins.
const MaxColours = 7

type Effect struct {
	name    string
	store   *source.Store
	bins    audio.BinBank
	palette rgb.Palette
	speed   float64
	fired   []int
}

func New(name string) *Effect { return &Effect{name: name} }

func (e *Effect) Name() string      { return e.name }
func (e *Effect) Presets() []string { return []string{"Default", "Drift"} }

func (e *Effect) ApplyPreset(p string, u *render.Uniforms) {
	if u == nil {
		return
	}
	switch p {
	case "Drift":
		u.Assign(map[string]float64{"Speed": 0.25})
	default:
		u.Assign(map[string]float64{"Speed": 0.5})
	}
}

func (e *Effect) Init(c *render.Context) error {
	e.palette = c.Palette.Truncate(MaxColours)
	if len(e.palette) < len(c.Palette) {
		c.Log.Info().Str("effect", e.name).Int("using", MaxColours).Msg("palette truncated")
	}
	e.store = source.NewStore(MaxColours, source.Insertion)
	e.bins = audio.NewBinBank(len(e.palette))
	e.speed = c.Uniforms.Param("Speed", 0.5)
	return nil
}

// Bins is the FFT bin count this effect wants from the analyser.
func (e *Effect) Bins() int { return len(e.bins) }

func (e *Effect) Sources() []source.Source { return e.store.Sources() }

func (e *Effect) Render(dst []render.Frame, c *render.Context, in *audio.Features) int {
	if in != nil {
		e.fired = e.bins.Feed(in.FFT, e.fired)
		for _, i := range e.fired {
			e.spawn(c, i, e.bins[i].Intensity())
		}
	}
	adj := c.Layout.AdjacentDistance()
	n := render.RenderField(dst, c, e.store, source.Star{Radius: adj}, rgb.Black)
	source.Propagate(e.store, source.EscapeRadius*adj)
	return n
}

func (e *Effect) spawn(c *render.Context, bin int, intensity float64) {
	pos, vel, ok := source.TrajectoryStart(c.Layout, c.Rand, e.speed)
	if !ok {
		return
	}
	e.store.Push(source.Source{
		Pos:       pos,
		Vel:       vel,
		Color:     e.palette.Get(bin, rgb.White).Scale(intensity),
		Speed:     e.speed,
		Intensity: intensity,
	})
}
