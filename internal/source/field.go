package source

import (
	"github.com/coreman2200/panelfx/internal/geometry"
	"github.com/coreman2200/panelfx/internal/rgb"
)

// Blend renders the colour seen at point at. Starting from base it lerps
// towards every source in store order, so later sources dominate. Channels
// are truncated and clamped to [0,255].
func Blend(at geometry.Point, st *Store, f Falloff, base rgb.RGB) rgb.RGB {
	r, g, b := float64(base.R), float64(base.G), float64(base.B)
	for i := range st.items {
		s := &st.items[i]
		k := f.Factor(geometry.Distance(at, s.Pos), s)
		r = r*(1-k) + float64(s.Color.R)*k
		g = g*(1-k) + float64(s.Color.G)*k
		b = b*(1-k) + float64(s.Color.B)*k
	}
	return rgb.RGB{R: int(r), G: int(g), B: int(b)}.Clamp()
}

// Age advances every source by its Speed and then, if more than minKeep
// sources are live, removes those older than maxAge. A zero Speed ages by 1.
// It returns the number removed.
func Age(st *Store, maxAge float64, minKeep int) int {
	for i := range st.items {
		step := st.items[i].Speed
		if step == 0 {
			step = 1
		}
		st.items[i].Age += step
	}
	if st.Len() <= minKeep {
		return 0
	}
	return st.RemoveIf(func(s *Source) bool { return s.Age > maxAge })
}

// Propagate moves every source by its velocity and removes those now
// farther than bound from the origin.
func Propagate(st *Store, bound float64) int {
	for i := range st.items {
		st.items[i].Pos = st.items[i].Pos.Add(st.items[i].Vel)
	}
	return st.RemoveIf(func(s *Source) bool {
		return s.Pos.Magnitude() > bound
	})
}
