package calib

import (
	"math"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/geometry"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/tests"
)

type Renderer struct {
	name   string
	preset string
	slices []layout.FrameSlice
	runner *tests.Runner
}

func New(name string) *Renderer {
	return &Renderer{name: name, preset: "PanelChanSweep"}
}

func (r *Renderer) Name() string { return r.name }
func (r *Renderer) Presets() []string {
	return []string{"PanelChanSweep", "PanelSweep", "RGB", "SliceSweep"}
}

func (r *Renderer) ApplyPreset(p string, u *render.Uniforms) {
	r.preset = p
	u.Ensure(map[string]float64{
		"LRGamma":       1.4,
		"TopWhitePow":   2.0,
		"TopWhiteMix":   0.6,
		"BaseIntensity": 1.0,
		"RightFloor":    0.0,
		"Saturation":    1.0,
	})
}

func (r *Renderer) Init(c *render.Context) error {
	slices, err := layout.FrameSlices(c.Layout, c.Layout.GlobalOrientation)
	if err != nil {
		return err
	}
	r.slices = slices
	r.runner = nil
	loop := c.Uniforms.Bool("Loop", true)
	switch r.preset {
	case "PanelSweep":
		r.runner = tests.NewRunner(tests.Plan{Kind: tests.PanelSweep, Loop: loop})
	case "RGB":
		r.runner = tests.NewRunner(tests.Plan{Kind: tests.RGBTest, Loop: loop})
	case "SliceSweep":
		r.runner = tests.NewRunner(tests.Plan{Kind: tests.SliceSweep, Loop: loop})
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Render runs the selected test pattern. PanelChanSweep gives panel i the
// single channel i%3 (in id order), darkens it left to right and pulls it
// towards white bottom to top, so wiring order and orientation can be read
// off the installation at a glance.
func (r *Renderer) Render(dst []render.Frame, c *render.Context, _ *audio.Features) int {
	if r.runner != nil {
		n, _ := r.runner.Step(c.Layout, r.slices, dst)
		return n
	}

	u := c.Uniforms
	lrPow := u.Param("LRGamma", 1.4)
	topPow := u.Param("TopWhitePow", 2.0)
	topMix := clamp01(u.Param("TopWhiteMix", 0.6))
	rightFloor := clamp01(u.Param("RightFloor", 0.0))
	baseInt := clamp01(u.Param("BaseIntensity", 1.0))
	sat := clamp01(u.Param("Saturation", 1.0))

	lo, hi := centroidExtent(c.Layout)
	norm := func(v, lo, hi float64) float64 {
		if hi-lo < 1e-9 {
			return 0
		}
		return (v - lo) / (hi - lo)
	}
	order := rankByID(c.Layout)

	n := min(len(dst), c.Layout.Count())
	for i := 0; i < n; i++ {
		p := c.Layout.Panels[i]
		cen := p.Shape.Centroid()

		// base channel per panel
		r0, g0, b0 := 0.0, 0.0, 0.0
		switch order[i] % 3 {
		case 0:
			r0 = 1
		case 1:
			g0 = 1
		case 2:
			b0 = 1
		}

		// Left→Right: darken with curve + floor
		lr := 1.0 - math.Pow(norm(cen.X, lo.X, hi.X), lrPow)
		lr = rightFloor + (1.0-rightFloor)*lr

		// Bottom→Top: blend toward white with curve and strength
		ny := norm(cen.Y, lo.Y, hi.Y)
		bt := math.Pow(ny, topPow) * topMix
		if ny >= 1 {
			bt = 1.0
		}

		R, G, B := r0*lr, g0*lr, b0*lr
		R = R + (1.0-R)*bt
		G = G + (1.0-G)*bt
		B = B + (1.0-B)*bt

		if sat < 1.0 {
			Yl := 0.2126*R + 0.7152*G + 0.0722*B
			R = Yl + (R-Yl)*sat
			G = Yl + (G-Yl)*sat
			B = Yl + (B-Yl)*sat
		}

		dst[i] = render.Frame{
			PanelID:   p.ID,
			R:         int(clamp01(R*baseInt) * 255),
			G:         int(clamp01(G*baseInt) * 255),
			B:         int(clamp01(B*baseInt) * 255),
			TransTime: c.TransTime(),
		}
	}
	return n
}

// rankByID returns, for each panel in layout order, its position when the
// panels are sorted by id.
func rankByID(l *layout.Layout) []int {
	rank := make([]int, l.Count())
	for i, p := range l.Panels {
		for _, q := range l.Panels {
			if q.ID < p.ID {
				rank[i]++
			}
		}
	}
	return rank
}

func centroidExtent(l *layout.Layout) (lo, hi geometry.Point) {
	for i, p := range l.Panels {
		c := p.Shape.Centroid()
		if i == 0 {
			lo, hi = c, c
			continue
		}
		lo.X, lo.Y = math.Min(lo.X, c.X), math.Min(lo.Y, c.Y)
		hi.X, hi.Y = math.Max(hi.X, c.X), math.Max(hi.Y, c.Y)
	}
	return lo, hi
}
