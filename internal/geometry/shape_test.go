package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var TestShapeAreas = []struct {
	Kind   Kind
	Side   float64
	Verts  int
	Expect float64
}{
	{Triangle, 150, 3, math.Sqrt(3) / 4 * 150 * 150},
	{Square, 10, 4, 100},
	{Rhombus, 10, 4, math.Sqrt(3) / 2 * 100},
}

func TestShapeVerticesAndArea(t *testing.T) {
	for _, v := range TestShapeAreas {
		t.Run(v.Kind.String(), func(t *testing.T) {
			for _, o := range []int{0, 30, 60, 90, 240} {
				s, err := NewShape(v.Kind, Point{12, -7}, o, v.Side)
				require.NoError(t, err)
				assert.Equal(t, v.Verts, s.VertexCount())
				assert.InDelta(t, v.Expect, s.Area(), 1e-6)

				// vertices average to the centroid
				var sum Point
				for _, p := range s.Vertices() {
					sum = sum.Add(p)
				}
				c := sum.Scale(1 / float64(s.VertexCount()))
				assert.True(t, Near(c, s.Centroid(), 1e-9), "centroid %v vs %v", c, s.Centroid())
			}
		})
	}
}

func TestShapeRejectsDegenerate(t *testing.T) {
	_, err := NewShape(Triangle, Point{}, 0, 0)
	assert.ErrorIs(t, err, ErrBadSide)
	_, err = NewShape(Kind(1), Point{}, 0, 150)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestTriangleBaseEdgeFollowsOrientation(t *testing.T) {
	s, err := NewShape(Triangle, Point{}, 0, DefaultSideLength)
	require.NoError(t, err)
	a, b := s.Vertex(0), s.Vertex(1)
	assert.InDelta(t, a.Y, b.Y, 1e-9, "base edge should be horizontal")
	assert.InDelta(t, DefaultSideLength, Distance(a, b), 1e-9)
	// apex up at 0 degrees
	assert.Greater(t, s.Vertex(2).Y, 0.0)

	s.Update(nil, intp(60))
	// a 60 degree turn points the apex down
	lowest := math.Inf(1)
	for _, p := range s.Vertices() {
		lowest = math.Min(lowest, p.Y)
	}
	assert.InDelta(t, -DefaultSideLength/math.Sqrt(3), lowest, 1e-9)
}

func TestShapeContains(t *testing.T) {
	for _, k := range []Kind{Triangle, Square, Rhombus} {
		s, err := NewShape(k, Point{40, 40}, 30, 20)
		require.NoError(t, err)
		assert.True(t, s.Contains(s.Centroid()), "%s centroid", k)
		for _, p := range s.Vertices() {
			assert.True(t, s.Contains(p), "%s vertex %v is on the boundary", k, p)
		}
		far := s.Centroid().Add(Point{X: 2 * s.Radius(), Y: 0})
		assert.False(t, s.Contains(far), "%s far point", k)
	}
}

func TestShapeUpdateKeepsUnsetFields(t *testing.T) {
	s, err := NewShape(Triangle, Point{1, 1}, 0, 10)
	require.NoError(t, err)
	area := s.Area()

	s.Update(&Point{5, 5}, nil)
	assert.Equal(t, Point{5, 5}, s.Centroid())
	assert.Equal(t, 0, s.Orientation())

	s.Update(nil, intp(120))
	assert.Equal(t, Point{5, 5}, s.Centroid())
	assert.Equal(t, 120, s.Orientation())
	assert.InDelta(t, area, s.Area(), 1e-9)
	assert.True(t, s.Contains(Point{5, 5}))
}

func TestShapeBounds(t *testing.T) {
	s, err := NewShape(Square, Point{0, 0}, 0, 2)
	require.NoError(t, err)
	b := s.Bounds()
	assert.InDelta(t, -1, b.Min.X, 1e-9)
	assert.InDelta(t, 1, b.Max.Y, 1e-9)

	tri, err := NewShape(Triangle, Point{0, 0}, 0, DefaultSideLength)
	require.NoError(t, err)
	tb := tri.Bounds()
	assert.InDelta(t, DefaultSideLength, tb.Max.X-tb.Min.X, 1e-9)
}

func intp(v int) *int { return &v }
