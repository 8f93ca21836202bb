package geometry

import (
	"errors"
	"math"

	"github.com/jbeda/geom"
)

// DefaultSideLength is the edge length of an Aurora triangle in layout units.
const DefaultSideLength = 150.0

// Kind selects the polygon a Shape generates. Values match the shape type
// field of the panel position stream; 1 is the rhythm module, which has no
// light-emitting surface and is rejected.
type Kind int

const (
	Triangle Kind = 0
	Square   Kind = 2
	Rhombus  Kind = 3
)

func (k Kind) String() string {
	switch k {
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Rhombus:
		return "rhombus"
	}
	return "unknown"
}

var (
	ErrUnknownKind = errors.New("unknown shape kind")
	ErrBadSide     = errors.New("side length must be positive")
)

const maxVertices = 4

// Shape is a convex polygon described by its centroid and orientation.
// Vertices and area are derived and always regenerated together.
type Shape struct {
	kind        Kind
	centroid    Point
	orientation int
	side        float64

	verts [maxVertices]Point
	n     int
	area  float64
}

// NewShape builds a shape of the given kind. orientation is the angle in
// degrees of the base edge to the x axis.
func NewShape(kind Kind, centroid Point, orientation int, side float64) (Shape, error) {
	if side <= 0 || math.IsNaN(side) || math.IsInf(side, 0) {
		return Shape{}, ErrBadSide
	}
	if _, ok := localVertices(kind, side); !ok {
		return Shape{}, ErrUnknownKind
	}
	s := Shape{kind: kind, centroid: centroid, orientation: orientation, side: side}
	s.regenerate()
	return s, nil
}

func (s Shape) Kind() Kind          { return s.kind }
func (s Shape) Centroid() Point     { return s.centroid }
func (s Shape) Orientation() int    { return s.orientation }
func (s Shape) SideLength() float64 { return s.side }
func (s Shape) Area() float64       { return s.area }
func (s Shape) VertexCount() int    { return s.n }
func (s Shape) Vertex(i int) Point  { return s.verts[i] }
func (s Shape) Vertices() []Point   { return append([]Point(nil), s.verts[:s.n]...) }

// Update rewrites the centroid and/or orientation. A nil argument leaves
// that field as it is.
func (s *Shape) Update(centroid *Point, orientation *int) {
	if centroid != nil {
		s.centroid = *centroid
	}
	if orientation != nil {
		s.orientation = *orientation
	}
	s.regenerate()
}

// Contains reports whether p lies inside or on the boundary of the shape.
func (s Shape) Contains(p Point) bool {
	const eps = 1e-9
	pos, neg := false, false
	for i := 0; i < s.n; i++ {
		a, b := s.verts[i], s.verts[(i+1)%s.n]
		edge, rel := b.Sub(a), p.Sub(a)
		cross := edge.X*rel.Y - edge.Y*rel.X
		if cross > eps {
			pos = true
		} else if cross < -eps {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return s.n > 0
}

// Bounds is the axis-aligned bounding rectangle of the vertices.
func (s Shape) Bounds() geom.Rect {
	if s.kind == Triangle {
		t := geom.Triangle{A: s.verts[0].coord(), B: s.verts[1].coord(), C: s.verts[2].coord()}
		return t.Bounds()
	}
	r := geom.Rect{Min: s.verts[0].coord(), Max: s.verts[0].coord()}
	for i := 1; i < s.n; i++ {
		r.ExpandToContainCoord(s.verts[i].coord())
	}
	return r
}

// Radius is the distance from the centroid to the farthest vertex.
func (s Shape) Radius() float64 {
	r := 0.0
	for i := 0; i < s.n; i++ {
		r = math.Max(r, Distance(s.centroid, s.verts[i]))
	}
	return r
}

func (s *Shape) regenerate() {
	local, _ := localVertices(s.kind, s.side)
	s.n = len(local)
	for i, v := range local {
		s.verts[i] = v.Rotate(float64(s.orientation)).Add(s.centroid)
	}
	s.area = shoelace(s.verts[:s.n])
}

// localVertices returns counter-clockwise vertices around a centroid at the
// origin with the base edge parallel to the x axis.
func localVertices(kind Kind, side float64) ([]Point, bool) {
	switch kind {
	case Triangle:
		r := side / math.Sqrt(3)
		return []Point{
			{X: -side / 2, Y: -r / 2},
			{X: side / 2, Y: -r / 2},
			{X: 0, Y: r},
		}, true
	case Square:
		h := side / 2
		return []Point{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}, true
	case Rhombus:
		h := side * math.Sqrt(3) / 4
		return []Point{
			{X: -0.75 * side, Y: -h},
			{X: 0.25 * side, Y: -h},
			{X: 0.75 * side, Y: h},
			{X: -0.25 * side, Y: h},
		}, true
	}
	return nil, false
}

func shoelace(v []Point) float64 {
	sum := 0.0
	for i := range v {
		j := (i + 1) % len(v)
		sum += v[i].X*v[j].Y - v[j].X*v[i].Y
	}
	return math.Abs(sum) / 2
}
