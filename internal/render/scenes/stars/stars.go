// Package stars streaks a light across the panels in a random direction at
// every beat. The colour follows the dominant frequency.
package stars

import (
	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
	"github.com/coreman2200/panelfx/internal/source"
)

const maxPaletteColours = 16

type Effect struct {
	name    string
	store   *source.Store
	det     *audio.EnergyDetector
	palette rgb.Palette
	speed   float64
}

func New(name string) *Effect { return &Effect{name: name} }

func (e *Effect) Name() string      { return e.name }
func (e *Effect) Presets() []string { return []string{"Default", "Fast", "Swarm"} }

func (e *Effect) ApplyPreset(p string, u *render.Uniforms) {
	if u == nil {
		return
	}
	switch p {
	case "Fast":
		u.Assign(map[string]float64{"MaxSources": 10, "Speed": 1.0})
	case "Swarm":
		u.Assign(map[string]float64{"MaxSources": 20, "Speed": 0.35})
	default:
		u.Assign(map[string]float64{"MaxSources": 10, "Speed": 0.5})
	}
}

func (e *Effect) Init(c *render.Context) error {
	u := c.Uniforms
	e.store = source.NewStore(int(u.Param("MaxSources", 10)), source.Insertion)
	e.det = audio.NewEnergyDetector(int(u.Param("Threshold", audio.DefaultEnergyThreshold)))
	e.speed = u.Param("Speed", 0.5)
	e.palette = c.Palette.Truncate(maxPaletteColours)
	if c.Layout.Count() < 2 {
		c.Log.Warn().Str("effect", e.name).Msg("fewer than two panels; no trajectories")
	}
	return nil
}

func (e *Effect) Sources() []source.Source { return e.store.Sources() }

// Power is the beat detector input: the mean bin power times ten.
func Power(fft []uint8) int {
	if len(fft) == 0 {
		return 0
	}
	sum := 0
	for _, v := range fft {
		sum += int(v)
	}
	return sum / len(fft) * 10
}

// ColourIndex maps the dominant bin onto the full byte range.
func ColourIndex(fft []uint8) uint8 {
	if len(fft) < 2 {
		return 0
	}
	return uint8(audio.DominantBin(fft) * 255 / (len(fft) - 1))
}

func (e *Effect) Render(dst []render.Frame, c *render.Context, in *audio.Features) int {
	if in != nil && e.det.Feed(Power(in.FFT)) {
		e.spawn(c, ColourIndex(in.FFT), 1)
	}
	adj := c.Layout.AdjacentDistance()
	n := render.RenderField(dst, c, e.store, source.Star{Radius: adj}, rgb.Black)
	source.Propagate(e.store, source.EscapeRadius*adj)
	return n
}

func (e *Effect) spawn(c *render.Context, colour uint8, intensity float64) {
	pos, vel, ok := source.TrajectoryStart(c.Layout, c.Rand, e.speed)
	if !ok {
		return
	}
	e.store.Push(source.Source{
		Pos:       pos,
		Vel:       vel,
		Color:     e.palette.AtByte(colour).Scale(intensity),
		Speed:     e.speed,
		Intensity: intensity,
	})
}
