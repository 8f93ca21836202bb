// Package tests steps through installation test patterns one frame at a
// time: every panel in id order, every colour channel, and every frame
// slice.
package tests

import (
	"sort"

	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

type Kind string

const (
	None       Kind = ""
	PanelSweep Kind = "panel_sweep"
	RGBTest    Kind = "rgb_channels"
	SliceSweep Kind = "slice_sweep"
)

// Kinds lists the runnable patterns.
var Kinds = []Kind{PanelSweep, RGBTest, SliceSweep}

type Plan struct {
	Kind Kind
	// Loop restarts the pattern instead of reporting completion.
	Loop bool
}

type Runner struct {
	plan Plan
	step int
}

func NewRunner(plan Plan) *Runner { return &Runner{plan: plan} }
func (r *Runner) Kind() Kind      { return r.plan.Kind }
func (r *Runner) Reset()          { r.step = 0 }

// Step writes one frame per panel into dst and returns how many were
// written. more is false once a finite pattern has shown its last frame.
func (r *Runner) Step(l *layout.Layout, slices []layout.FrameSlice, dst []render.Frame) (n int, more bool) {
	n = min(len(dst), l.Count())
	lit := map[int]rgb.RGB{}

	switch r.plan.Kind {
	case PanelSweep:
		ids := make([]int, 0, l.Count())
		for _, p := range l.Panels {
			ids = append(ids, p.ID)
		}
		sort.Ints(ids)
		if !r.wrap(len(ids)) {
			return 0, false
		}
		lit[ids[r.step]] = rgb.White
	case RGBTest:
		channels := []rgb.RGB{rgb.Red, rgb.Green, rgb.Blue}
		if !r.wrap(len(channels)) {
			return 0, false
		}
		col := channels[r.step]
		for _, p := range l.Panels {
			lit[p.ID] = col
		}
	case SliceSweep:
		if !r.wrap(len(slices)) {
			return 0, false
		}
		for _, id := range slices[r.step].PanelIDs {
			lit[id] = rgb.RGB{G: 255, B: 255} // cyan
		}
	default:
		return 0, false
	}

	for i := 0; i < n; i++ {
		id := l.Panels[i].ID
		dst[i] = render.Frame{PanelID: id}
		dst[i].SetColor(lit[id])
	}
	r.step++
	return n, true
}

func (r *Runner) wrap(total int) bool {
	if r.step >= total && r.plan.Loop {
		r.step = 0
	}
	return r.step < total
}
