// Package diffuse places a full-brightness light on a random panel at every
// beat. Each light spreads outward and fades; overlapping lights blend.
package diffuse

import (
	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
	"github.com/coreman2200/panelfx/internal/source"
)

const (
	maxPaletteColours = 16
	minSimultaneous   = 2
)

type Effect struct {
	name    string
	store   *source.Store
	det     *audio.EnergyDetector
	falloff source.Diffusion
	palette rgb.Palette
}

func New(name string) *Effect {
	return &Effect{name: name, falloff: source.DefaultDiffusion}
}

func (e *Effect) Name() string      { return e.name }
func (e *Effect) Presets() []string { return []string{"Default", "Lingering", "Busy"} }

func (e *Effect) ApplyPreset(p string, u *render.Uniforms) {
	if u == nil {
		return
	}
	switch p {
	case "Lingering":
		u.Assign(map[string]float64{"MaxSources": 6, "MaxAge": 80, "Floor": 0.1})
	case "Busy":
		u.Assign(map[string]float64{"MaxSources": 16, "MaxAge": 25, "Floor": 0.02})
	default:
		u.Assign(map[string]float64{"MaxSources": 10, "MaxAge": 40, "Floor": 0.05})
	}
}

func (e *Effect) Init(c *render.Context) error {
	u := c.Uniforms
	e.store = source.NewStore(int(u.Param("MaxSources", 10)), source.Insertion)
	e.det = audio.NewEnergyDetector(int(u.Param("Threshold", audio.DefaultEnergyThreshold)))
	e.falloff = source.DefaultDiffusion
	e.falloff.MaxAge = u.Param("MaxAge", e.falloff.MaxAge)
	e.falloff.Floor = u.Param("Floor", e.falloff.Floor)
	e.palette = c.Palette.Truncate(maxPaletteColours)
	c.Log.Debug().Str("effect", e.name).Int("colours", len(e.palette)).Int("panels", c.Layout.Count()).Msg("init")
	return nil
}

// Sources exposes the live lights for inspection.
func (e *Effect) Sources() []source.Source { return e.store.Sources() }

func (e *Effect) Render(dst []render.Frame, c *render.Context, in *audio.Features) int {
	if in != nil && e.det.Feed(int(in.Energy)) {
		e.spawn(c)
	}
	n := render.RenderField(dst, c, e.store, e.falloff, rgb.Black)
	source.Age(e.store, e.falloff.MaxAge, minSimultaneous)
	return n
}

func (e *Effect) spawn(c *render.Context) {
	pos, ok := source.RandomCentroid(c.Layout, c.Rand)
	if !ok {
		return
	}
	col, _ := e.palette.Pick(c.Rand, rgb.Grey)
	e.store.Push(source.Source{Pos: pos, Color: col, Speed: 1, Intensity: 1})
}
