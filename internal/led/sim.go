package led

import (
	"github.com/rs/zerolog"

	"github.com/coreman2200/panelfx/internal/render"
)

// Sim keeps the last frame and logs a compact summary of each one at debug
// level, useful headless and in tests.
type Sim struct {
	Count int

	log  zerolog.Logger
	last []render.Frame
}

func NewSim(log zerolog.Logger) *Sim { return &Sim{log: log} }

func (s *Sim) Write(frames []render.Frame) error {
	s.Count++
	s.last = append(s.last[:0], frames...)
	if len(frames) == 0 {
		return nil
	}
	var r, g, b int
	for _, f := range frames {
		r += f.R
		g += f.G
		b += f.B
	}
	n := len(frames)
	s.log.Debug().
		Int("frame", s.Count).
		Int("records", n).
		Ints("avg", []int{r / n, g / n, b / n}).
		Int("first_id", frames[0].PanelID).
		Msg("sim frame")
	return nil
}

// Last returns a copy of the last written frame.
func (s *Sim) Last() []render.Frame { return append([]render.Frame(nil), s.last...) }

func (s *Sim) Close() error { return nil }
