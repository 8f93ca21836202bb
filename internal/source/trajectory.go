package source

import (
	"math"
	"math/rand"

	"github.com/coreman2200/panelfx/internal/geometry"
	"github.com/coreman2200/panelfx/internal/layout"
)

// EscapeRadius is how many adjacent spacings a moving source may travel from
// the origin before it is dropped.
const EscapeRadius = 20.0

// lineThreshold is the largest centroid to line distance, in adjacent
// spacings, that still counts as lying on a trajectory.
const lineThreshold = 0.5

// PointToLine returns the perpendicular distance from p to the line through
// a and b, and the parametric position u of the foot of the perpendicular
// (0 at a, 1 at b). A degenerate line yields the distance to a and u 0.
func PointToLine(p, a, b geometry.Point) (dist, u float64) {
	d := b.Sub(a)
	m2 := d.Dot(d)
	if m2 == 0 {
		return geometry.Distance(p, a), 0
	}
	u = p.Sub(a).Dot(d) / m2
	foot := a.Add(d.Scale(u))
	return geometry.Distance(foot, p), u
}

// RandomCentroid returns the centroid of a random panel.
func RandomCentroid(l *layout.Layout, rng *rand.Rand) (geometry.Point, bool) {
	if l == nil || l.Count() == 0 {
		return geometry.Point{}, false
	}
	return l.Panels[rng.Intn(l.Count())].Shape.Centroid(), true
}

// TrajectoryStart picks a random direction across the layout defined by two
// distinct panels and walks back along it to the panel nearest the line
// with the smallest parametric position, so the streak enters from an
// edge. The velocity is speed adjacent spacings per tick. Layouts with
// fewer than two panels report false.
func TrajectoryStart(l *layout.Layout, rng *rand.Rand, speed float64) (pos, vel geometry.Point, ok bool) {
	if l == nil || l.Count() < 2 {
		return pos, vel, false
	}
	n := l.Count()
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	p1, p2 := l.Panels[i].Shape.Centroid(), l.Panels[j].Shape.Centroid()
	dir := p2.Sub(p1).Unit()
	if dir == (geometry.Point{}) {
		return pos, vel, false
	}
	adj := l.AdjacentDistance()
	vel = dir.Scale(speed * adj)

	best := math.Inf(1)
	pos = p1
	for k := range l.Panels {
		c := l.Panels[k].Shape.Centroid()
		dist, u := PointToLine(c, p1, p2)
		if dist/adj < lineThreshold && u < best {
			best = u
			pos = c
		}
	}
	return pos, vel, true
}

// BubbleStartPoints finds, for every panel, the lowest panel on the
// vertical line through it. Unique results are returned in discovery
// order, at most max of them.
func BubbleStartPoints(l *layout.Layout, max int) []geometry.Point {
	if l == nil || l.Count() == 0 || max <= 0 {
		return nil
	}
	adj := l.AdjacentDistance()
	var out []geometry.Point
	for n := range l.Panels {
		top := l.Panels[n].Shape.Centroid()
		down := top.Sub(geometry.Point{Y: 1})

		best, lowest := math.Inf(-1), top
		for k := range l.Panels {
			c := l.Panels[k].Shape.Centroid()
			dist, u := PointToLine(c, top, down)
			if dist/adj < lineThreshold && u > best {
				best = u
				lowest = c
			}
		}
		if !contains(out, lowest) {
			out = append(out, lowest)
			if len(out) >= max {
				break
			}
		}
	}
	return out
}

func contains(pts []geometry.Point, p geometry.Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}
