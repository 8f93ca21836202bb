package layout

import "math"

// SnapAngle rounds deg to the nearest multiple of 30 degrees.
func SnapAngle(deg float64) int {
	return int(math.Round(deg/30.0)) * 30
}

// Rotate turns the whole layout about its geometric center by angle, snapped
// to the nearest 30 degrees. Each centroid is rotated about the center and
// each panel orientation advances by the same amount; GlobalOrientation
// advances mod 360. It returns the snapped angle that was applied. Nothing is
// mutated on error.
func Rotate(l *Layout, angle *float64) (int, error) {
	if l == nil {
		return 0, ErrNilLayout
	}
	if angle == nil {
		return 0, ErrNilAngle
	}
	delta := SnapAngle(*angle)
	if delta == 0 {
		return 0, nil
	}
	center := l.GeometricCenter()
	for i := range l.Panels {
		s := &l.Panels[i].Shape
		c := s.Centroid().RotateAbout(center, float64(delta))
		o := s.Orientation() + delta
		s.Update(&c, &o)
	}
	l.GlobalOrientation = mod360(l.GlobalOrientation + delta)
	return delta, nil
}

// RotateBy is a convenience over Rotate for callers holding a value.
func (l *Layout) RotateBy(deg float64) (int, error) {
	return Rotate(l, &deg)
}

// MaxExpanse searches the twelve 30 degree rotations for the one with the
// widest horizontal spread of panel centroids. The search turns a copy; the
// layout itself is rotated once by the winning angle, which is returned.
func MaxExpanse(l *Layout) (int, error) {
	if l == nil {
		return 0, ErrNilLayout
	}
	search := l.Clone()
	best, bestDeg := math.MinInt, 0
	for d := 0; d < 360/30; d++ {
		minX, maxX := math.MaxInt, math.MinInt
		for i := range search.Panels {
			x := int(search.Panels[i].Shape.Centroid().X)
			if x > maxX {
				maxX = x
			}
			if x < minX {
				minX = x
			}
		}
		if len(search.Panels) > 0 && maxX-minX > best {
			best = maxX - minX
			bestDeg = d * 30
		}
		if _, err := search.RotateBy(30); err != nil {
			return 0, err
		}
	}
	if _, err := l.RotateBy(float64(bestDeg)); err != nil {
		return 0, err
	}
	return bestDeg, nil
}

func mod360(v int) int {
	v %= 360
	if v < 0 {
		v += 360
	}
	return v
}
