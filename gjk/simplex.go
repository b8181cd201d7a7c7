package gjk

import (
	"iter"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// SimplexKind names the three states of a 2D simplex.
type SimplexKind uint8

const (
	SimplexPoint SimplexKind = iota + 1
	SimplexLine
	SimplexTriangle
)

func (k SimplexKind) String() string {
	switch k {
	case SimplexPoint:
		return "point"
	case SimplexLine:
		return "line"
	case SimplexTriangle:
		return "triangle"
	}
	return "empty"
}

// Winding is the orientation of a triangle simplex. EPA uses it to pick which
// perpendicular of an edge points out of the polytope.
type Winding uint8

const (
	// WindingCounterClockwise is the left-handed orientation (positive signed area).
	WindingCounterClockwise Winding = iota
	// WindingClockwise is the right-handed orientation (negative signed area).
	WindingClockwise
)

func (w Winding) String() string {
	if w == WindingClockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}

// Outward returns the perpendicular of edge pointing out of a polygon wound with w.
// The result is not normalized.
func (w Winding) Outward(edge mgl64.Vec2) mgl64.Vec2 {
	if w == WindingClockwise {
		return mgl64.Vec2{-edge.Y(), edge.X()}
	}
	return mgl64.Vec2{edge.Y(), -edge.X()}
}

// Simplex holds 1 to 3 points of the Minkowski difference, in insertion order.
// The last point is always the most recently added one.
// Size progression: 1 point → 2 points (line) → 3 points (triangle)
type Simplex struct {
	points [3]mgl64.Vec2
	count  int
}

// NewSimplex creates a point simplex.
func NewSimplex(p mgl64.Vec2) Simplex {
	return Simplex{points: [3]mgl64.Vec2{p}, count: 1}
}

// NewLine creates a line simplex, b being the most recent point.
func NewLine(a, b mgl64.Vec2) Simplex {
	return Simplex{points: [3]mgl64.Vec2{a, b}, count: 2}
}

// NewTriangle creates a triangle simplex, c being the most recent point.
func NewTriangle(a, b, c mgl64.Vec2) Simplex {
	return Simplex{points: [3]mgl64.Vec2{a, b, c}, count: 3}
}

// Add grows the simplex by one point: point → line → triangle.
// Adding a fourth point is a programming error and panics.
func (s *Simplex) Add(p mgl64.Vec2) {
	if s.count >= len(s.points) {
		panic("gjk: cannot add a point to a triangle simplex")
	}
	s.points[s.count] = p
	s.count++
}

// collapse shrinks a triangle back to the line (b, a). GJK does this when the
// origin lies outside one of the edges joining the newest point.
func (s *Simplex) collapse(b, a mgl64.Vec2) {
	s.points[0] = b
	s.points[1] = a
	s.count = 2
}

func (s Simplex) Len() int {
	return s.count
}

func (s Simplex) Kind() SimplexKind {
	return SimplexKind(s.count)
}

// Last returns the most recently added point.
func (s Simplex) Last() mgl64.Vec2 {
	if s.count == 0 {
		panic("gjk: empty simplex")
	}
	return s.points[s.count-1]
}

// All iterates over the points in stored order.
func (s Simplex) All() iter.Seq[mgl64.Vec2] {
	return func(yield func(mgl64.Vec2) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(s.points[i]) {
				return
			}
		}
	}
}

// Points returns a copy of the points in stored order.
func (s Simplex) Points() []mgl64.Vec2 {
	return append([]mgl64.Vec2(nil), s.points[:s.count]...)
}

// Winding classifies a triangle simplex by the sign of the cross product of its two
// edges leaving the first point. Only a triangle has a winding: other kinds panic.
func (s Simplex) Winding() Winding {
	if s.count != 3 {
		panic("gjk: winding is only defined for a triangle simplex")
	}
	if SignedArea(s.points[0], s.points[1], s.points[2]) < 0 {
		return WindingClockwise
	}
	return WindingCounterClockwise
}

// SignedArea returns twice the signed area of the triangle abc.
func SignedArea(a, b, c mgl64.Vec2) float64 {
	return actor.Cross(b.Sub(a), c.Sub(a))
}
