package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Point is an immutable 2-D coordinate in layout units.
type Point struct{ X, Y float64 }

func (p Point) coord() geom.Coord { return geom.Coord{X: p.X, Y: p.Y} }

func fromCoord(c geom.Coord) Point { return Point{X: c.X, Y: c.Y} }

func (p Point) Add(q Point) Point { return fromCoord(p.coord().Plus(q.coord())) }
func (p Point) Sub(q Point) Point { return fromCoord(p.coord().Minus(q.coord())) }

func (p Point) Scale(s float64) Point { return fromCoord(p.coord().Times(s)) }

func (p Point) Magnitude() float64 { return p.coord().Magnitude() }

func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Unit returns the normalized vector. The zero vector stays zero.
func (p Point) Unit() Point {
	if p.X == 0 && p.Y == 0 {
		return Point{}
	}
	return fromCoord(p.coord().Unit())
}

// Rotate turns p counter-clockwise about the origin by deg degrees.
func (p Point) Rotate(deg float64) Point {
	s, c := math.Sincos(Radians(deg))
	return Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// RotateAbout turns p about center by deg degrees.
func (p Point) RotateAbout(center Point, deg float64) Point {
	return p.Sub(center).Rotate(deg).Add(center)
}

// Distance is the Euclidean distance between p and q.
func Distance(p, q Point) float64 { return p.coord().DistanceFrom(q.coord()) }

// Near reports whether p and q agree within tol on both axes.
func Near(p, q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

func Radians(deg float64) float64 { return deg * math.Pi / 180.0 }
