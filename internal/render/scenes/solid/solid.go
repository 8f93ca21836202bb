package solid

import (
	"math"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

// Solid is a tiny effect that fills the layout with a single colour.
// It supports presets and an optional "PulseHz" param that modulates
// brightness, timed by the "FPS" param.
type Solid struct {
	name  string
	c     rgb.RGB
	ticks int
}

func New(name string, c rgb.RGB) *Solid { return &Solid{name: name, c: c} }

func (s *Solid) Name() string { return s.name }

func (s *Solid) Presets() []string {
	return []string{"Red", "Green", "Blue", "White", "Black", "Palette"}
}

func (s *Solid) ApplyPreset(name string, u *render.Uniforms) {
	switch name {
	case "Red":
		s.c = rgb.Red
	case "Green":
		s.c = rgb.Green
	case "Blue":
		s.c = rgb.Blue
	case "White":
		s.c = rgb.White
	case "Black":
		s.c = rgb.Black
	case "Palette":
		u.Assign(map[string]float64{"UsePalette": 1})
	}
}

func (s *Solid) Init(c *render.Context) error {
	s.ticks = 0
	if c.Uniforms.Param("UsePalette", 0) > 0.5 && len(c.Palette) > 0 {
		s.c = c.Palette[0]
	}
	return nil
}

func (s *Solid) Render(dst []render.Frame, c *render.Context, _ *audio.Features) int {
	u := c.Uniforms
	scale := 1.0
	if hz := u.Param("PulseHz", 0); hz > 0 {
		t := float64(s.ticks) / math.Max(u.Param("FPS", 20), 1)
		scale = 0.5 + 0.5*math.Sin(2*math.Pi*hz*t)
	}
	s.ticks++
	return render.Fill(dst, c, s.c.Scale(scale), c.TransTime())
}
