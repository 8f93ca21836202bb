// Package northern diffuses soft lights placed on random panels. Beats add
// bright lights coloured by the recent dominant frequency, onsets add dim
// ones; the brightest lights are blended last so they stay on top.
package northern

import (
	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
	"github.com/coreman2200/panelfx/internal/source"
)

const (
	minSimultaneous = 2
	beatSpeed       = 1.3
	onsetIntensity  = 0.3
	onsetSpeed      = 0.8
)

type Effect struct {
	name    string
	store   *source.Store
	falloff source.Diffusion
	avg     audio.DominantAverager
}

func New(name string) *Effect { return &Effect{name: name, falloff: source.DefaultDiffusion} }

func (e *Effect) Name() string      { return e.name }
func (e *Effect) Presets() []string { return []string{"Default", "Aurora"} }

func (e *Effect) ApplyPreset(p string, u *render.Uniforms) {
	if u == nil {
		return
	}
	switch p {
	case "Aurora":
		u.Assign(map[string]float64{"MaxSources": 14, "MaxAge": 60})
	default:
		u.Assign(map[string]float64{"MaxSources": 10, "MaxAge": 40})
	}
}

func (e *Effect) Init(c *render.Context) error {
	e.store = source.NewStore(int(c.Uniforms.Param("MaxSources", 10)), source.ByIntensity)
	e.falloff = source.DefaultDiffusion
	e.falloff.MaxAge = c.Uniforms.Param("MaxAge", e.falloff.MaxAge)
	e.avg = audio.DominantAverager{}
	return nil
}

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
	n := render.RenderField(dst, c, e.store, e.falloff, rgb.Black)
	source.Age(e.store, e.falloff.MaxAge, minSimultaneous)
	return n
}

func (e *Effect) spawn(c *render.Context, col rgb.RGB, intensity, speed float64) {
	pos, ok := source.RandomCentroid(c.Layout, c.Rand)
	if !ok {
		return
	}
	e.store.Push(source.Source{Pos: pos, Color: col.Scale(intensity), Intensity: intensity, Speed: speed})
}
