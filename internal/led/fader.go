package led

import (
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

// fade is one panel moving from one colour to another over steps writes.
type fade struct {
	from, to rgb.RGB
	step     int
	steps    int
}

func (f *fade) colour() rgb.RGB {
	if f.step >= f.steps {
		return f.to
	}
	return rgb.Lerp(f.from, f.to, float64(f.step)/float64(f.steps))
}

// Fader plays out the transition time of every record for drivers that
// have no transitions of their own. Transition times are in units of
// 100 ms and fps is the rate Write is called at. Every Write, including an
// empty one, advances all running fades by one step and writes the whole
// known panel set downstream with zero transition time.
type Fader struct {
	out   Driver
	fps   int
	order []int
	fades map[int]*fade
	buf   []render.Frame
}

func NewFader(out Driver, fps int) *Fader {
	return &Fader{out: out, fps: max(fps, 1), fades: map[int]*fade{}}
}

// Steps is the number of writes a record with transition time tt takes to
// reach its colour.
func (f *Fader) Steps(tt int) int {
	return max(tt*f.fps/10, 1)
}

func (f *Fader) Write(frames []render.Frame) error {
	for _, r := range frames {
		cur, ok := f.fades[r.PanelID]
		if !ok {
			cur = &fade{}
			f.fades[r.PanelID] = cur
			f.order = append(f.order, r.PanelID)
		}
		*cur = fade{from: cur.colour(), to: r.Color(), steps: f.Steps(r.TransTime)}
	}

	f.buf = f.buf[:0]
	for _, id := range f.order {
		cur := f.fades[id]
		if cur.step < cur.steps {
			cur.step++
		}
		rec := render.Frame{PanelID: id}
		rec.SetColor(cur.colour())
		f.buf = append(f.buf, rec)
	}
	return f.out.Write(f.buf)
}

func (f *Fader) Close() error { return f.out.Close() }
