// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for 2D collision detection.
//
// GJK detects whether two convex shapes overlap by testing if their Minkowski difference
// contains the origin. The algorithm builds a simplex incrementally (point, line, triangle),
// narrowing a search direction toward the origin, until the triangle encloses the origin
// or a support point proves that the origin cannot be reached.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations bounds the search. Overlapping or separated shapes converge in a
	// handful of iterations; shapes exactly touching along a curved boundary may not.
	MaxIterations = 64

	// degenerateEpsilon is the relative threshold under which three points are
	// considered collinear, and the origin considered lying on a line.
	degenerateEpsilon = 1e-12
)

// ErrMaxIterations is returned when GJK neither encloses the origin nor proves separation
// within MaxIterations.
var ErrMaxIterations = errors.New("gjk: no verdict within the iteration limit")

// MinkowskiSupport computes a support point in the Minkowski difference (A - B).
//
// The Minkowski difference A - B is the set of all vectors (a - b) where a ∈ A and b ∈ B.
// For collision detection, we only need the extreme points (support points) in any direction.
//
// Returns:
//
//	Support point: furthestPoint(A, direction) - furthestPoint(B, -direction)
//
// This is the fundamental query that makes GJK work for any convex shape - shapes only
// need to implement a Support() function, not expose their full geometry.
func MinkowskiSupport(a, b *actor.Body, direction mgl64.Vec2) mgl64.Vec2 {
	supportA := a.SupportWorld(direction)
	supportB := b.SupportWorld(direction.Mul(-1))
	return supportA.Sub(supportB)
}

// Collides reports whether the two bodies overlap. Touching shapes collide.
func Collides(a, b *actor.Body) (bool, error) {
	collision, _, err := GJK(a, b)
	return collision, err
}

// GJK performs collision detection between two convex bodies.
//
// Algorithm overview:
//  1. Start with the direction between both interior points
//  2. Get first support point in Minkowski difference
//  3. Iteratively refine simplex toward origin
//  4. If origin is contained → collision
//  5. If can't reach origin → no collision
//
// Returns the verdict and the final simplex. On collision the simplex is always a triangle
// enclosing the origin, which EPA uses as its initial polytope. On separation the simplex is
// partial and must not be handed to EPA.
func GJK(a, b *actor.Body) (bool, Simplex, error) {
	direction := a.StartWorld().Sub(b.StartWorld())
	if direction.LenSqr() == 0 {
		direction = mgl64.Vec2{1, 0} // Fallback if both interior points coincide
	}

	simplex := NewSimplex(MinkowskiSupport(a, b, direction))
	direction = direction.Mul(-1)

	for i := 0; i < MaxIterations; i++ {
		newPoint := MinkowskiSupport(a, b, direction)

		// The new point doesn't pass the origin in the search direction:
		// the origin cannot be reached, therefore no collision.
		if newPoint.Dot(direction) < 0 {
			return false, simplex, nil
		}

		simplex.Add(newPoint)

		if containsOrigin(&simplex, &direction) {
			return true, simplex, nil
		}
	}

	return false, simplex, fmt.Errorf("%w (%d iterations)", ErrMaxIterations, MaxIterations)
}

// containsOrigin tests if the simplex contains the origin and refines the simplex and
// the search direction otherwise.
//
// Behavior by simplex dimension:
//   - 2 points (line): search perpendicular to the line, toward the origin
//   - 3 points (triangle): collapse to the edge facing the origin, or report containment
func containsOrigin(simplex *Simplex, direction *mgl64.Vec2) bool {
	switch simplex.count {
	case 2:
		line(simplex, direction)
		return false
	case 3:
		return triangle(simplex, direction)
	}
	return false
}

// line handles Line(B, A), A being the newest point. The simplex stays a line; the next
// support point turns it into a triangle.
func line(simplex *Simplex, direction *mgl64.Vec2) {
	b := simplex.points[0]
	a := simplex.points[1]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ab.LenSqr() == 0 {
		*direction = ao
		return
	}

	abPerp := tripleProduct(ab, ao, ab)
	if onLine(abPerp, ab) {
		// The origin lies on the line AB: any side works, the triangle test decides.
		abPerp = actor.Perpendicular(ab)
	}

	*direction = abPerp
}

// triangle handles Triangle(B, C, A), A being the newest point.
//
// The origin cannot lie beyond BC: A was found searching from BC toward the origin.
// Only the regions of edges AB and AC remain to be tested.
func triangle(simplex *Simplex, direction *mgl64.Vec2) bool {
	b := simplex.points[0]
	c := simplex.points[1]
	a := simplex.points[2]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	if math.Abs(actor.Cross(ab, ac)) <= degenerateEpsilon*math.Sqrt(ab.LenSqr()*ac.LenSqr()) {
		return collinear(simplex, direction)
	}

	// Region AB (edge), pointing away from C
	abPerp := tripleProduct(ac, ab, ab)
	if abPerp.Dot(ao) > 0 {
		simplex.collapse(b, a)
		*direction = abPerp
		return false
	}

	// Region AC (edge), pointing away from B
	acPerp := tripleProduct(ab, ac, ac)
	if acPerp.Dot(ao) > 0 {
		simplex.collapse(c, a)
		*direction = acPerp
		return false
	}

	return true
}

// collinear handles a flat triangle. It only happens when the origin lies on the
// boundary line of the Minkowski difference: the shapes touch when the origin falls
// between the extreme points, otherwise the search continues from the extreme
// nearest to the origin.
func collinear(simplex *Simplex, direction *mgl64.Vec2) bool {
	p, q := extremes(simplex.points)
	pq := q.Sub(p)

	if pq.LenSqr() == 0 {
		if p.LenSqr() == 0 {
			return true
		}
		simplex.collapse(p, p)
		*direction = p.Mul(-1)
		return false
	}

	t := -p.Dot(pq) / pq.LenSqr()
	toOrigin := tripleProduct(pq, p.Mul(-1), pq)
	if t >= 0 && t <= 1 && onLine(toOrigin, pq) {
		return true
	}

	near, far := p, q
	if t > 0.5 {
		near, far = q, p
	}
	simplex.collapse(far, near)

	if onLine(toOrigin, pq) {
		*direction = near.Mul(-1)
	} else {
		*direction = toOrigin
	}
	return false
}

// extremes returns the two points of the simplex farthest apart.
func extremes(points [3]mgl64.Vec2) (mgl64.Vec2, mgl64.Vec2) {
	p, q := points[0], points[1]
	best := q.Sub(p).LenSqr()

	if d := points[2].Sub(points[0]).LenSqr(); d > best {
		q, best = points[2], d
	}
	if d := points[2].Sub(points[1]).LenSqr(); d > best {
		p, q = points[1], points[2]
	}

	return p, q
}

// onLine reports whether perp, computed as tripleProduct(edge, x, edge), is too small
// for x to be considered off the line carried by edge.
func onLine(perp, edge mgl64.Vec2) bool {
	lenSqr := edge.LenSqr()
	return perp.LenSqr() <= degenerateEpsilon*degenerateEpsilon*lenSqr*lenSqr*math.Max(lenSqr, 1)
}

// tripleProduct returns (a × b) × c = b(a·c) - a(b·c), computed in the plane.
func tripleProduct(a, b, c mgl64.Vec2) mgl64.Vec2 {
	return b.Mul(a.Dot(c)).Sub(a.Mul(b.Dot(c)))
}
