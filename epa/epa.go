// Package epa implements the Expanding Polytope Algorithm for computing penetration depth.
//
// EPA is run after GJK detects a collision to determine:
//   - Penetration depth (how far shapes overlap)
//   - Contact normal (direction to separate shapes)
//
// The algorithm expands a polygon (starting from GJK's final simplex) toward the boundary
// of the Minkowski difference, until the edge closest to the origin lies on that boundary.
// Its normal and distance are the Minimum Translation Vector (MTV) separating the shapes.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations limits polytope expansion. Polygons converge in a few iterations,
	// but curved shapes add one vertex per iteration: two nearly concentric circles
	// need around a thousand.
	MaxIterations = 4096

	// Tolerance defines when EPA has converged: the support point along the closest
	// edge normal improves the distance by less than this threshold.
	Tolerance = 1e-5

	// NormalSnapThreshold is used to clamp nearly-zero normal components to exactly zero.
	NormalSnapThreshold = 1e-8

	// straddleEpsilon and convexityEpsilon are relative thresholds under which a cross
	// product is considered zero.
	straddleEpsilon  = 1e-9
	convexityEpsilon = 1e-9

	// degenerateEpsilon is the relative threshold under which a triangle is flat.
	degenerateEpsilon = 1e-12

	polytopeInitialCapacity = 16
)

var (
	// ErrNotConverged is returned when the iteration limit is reached.
	ErrNotConverged = errors.New("epa: no convergence within the iteration limit")
	// ErrNoSeparatingEdge is returned when no edge of the polytope has a support point
	// inside its wedge.
	ErrNoSeparatingEdge = errors.New("epa: no edge can be expanded")
	// ErrNonConvex is returned when an insertion folds the polytope.
	ErrNonConvex = errors.New("epa: polytope lost convexity")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("epa: invalid configuration")
)

// Config holds the solver parameters.
type Config struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
}

// DefaultConfig returns the package defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations: MaxIterations,
		Tolerance:     Tolerance,
	}
}

func (c Config) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 1) {
		return fmt.Errorf("%w: tolerance must be a positive number, got %v", ErrInvalidConfig, c.Tolerance)
	}
	return nil
}

// Result is the outcome of an EPA run.
type Result struct {
	Normal     mgl64.Vec2   // Unit normal, from A toward B
	Depth      float64      // Penetration depth along Normal, never negative
	Polytope   []mgl64.Vec2 // Final polygon, in ring order
	Iterations int
}

// ConvergenceError reports an EPA run that stopped without converging.
// Best holds the last estimate, usable as an approximate answer.
type ConvergenceError struct {
	Err  error
	Best Result
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (best depth %g)", e.Err, e.Best.Iterations, e.Best.Depth)
}

func (e *ConvergenceError) Unwrap() error {
	return e.Err
}

// Solve computes the contact normal and penetration depth of two overlapping bodies,
// from the simplex returned by a successful GJK.
func Solve(a, b *actor.Body, simplex gjk.Simplex) (mgl64.Vec2, float64, error) {
	result, err := SolveInternal(a, b, simplex)
	return result.Normal, result.Depth, err
}

// SolveInternal is Solve with the full result, using the default configuration.
func SolveInternal(a, b *actor.Body, simplex gjk.Simplex) (Result, error) {
	return SolveWithConfig(a, b, simplex, DefaultConfig())
}

// SolveWithConfig runs EPA with explicit parameters.
//
// Algorithm overview:
//  1. Complete a line simplex into a triangle
//  2. Fix the winding from that triangle
//  3. Find the edge closest to the origin whose support point lies in its wedge
//  4. If the support point doesn't improve the distance → done
//  5. Otherwise insert the support point between the edge end points
//  6. Repeat from step 3
//
// The simplex must be a line or a triangle: a point simplex panics.
func SolveWithConfig(a, b *actor.Body, simplex gjk.Simplex, config Config) (Result, error) {
	if simplex.Len() < 2 {
		panic("epa: cannot expand a " + simplex.Kind().String() + " simplex")
	}

	support := func(direction mgl64.Vec2) mgl64.Vec2 {
		return gjk.MinkowskiSupport(a, b, direction)
	}

	triangle, flatNormal, ok := completeTriangle(simplex, support)
	if !ok {
		// The Minkowski difference has no area: the shapes only touch.
		return Result{Normal: flatNormal, Polytope: simplex.Points()}, nil
	}

	polytope := polytopePool.Get().(*Polytope)
	defer polytopePool.Put(polytope)
	polytope.Reset(triangle)

	var best Result
	for i := 0; i < config.MaxIterations; i++ {
		edge, point, found := polytope.ClosestEdge(support)
		if !found {
			best.Polytope = polytope.Points()
			return best, &ConvergenceError{Err: ErrNoSeparatingEdge, Best: best}
		}

		depth := point.Dot(edge.Normal)
		best = Result{
			Normal:     edge.Normal,
			Depth:      math.Max(depth, 0),
			Iterations: i + 1,
		}

		if depth-edge.Distance < config.Tolerance {
			best.Normal = snapNormalToAxis(edge.Normal)
			best.Polytope = polytope.Points()
			return best, nil
		}

		if err := polytope.Insert(edge.Index, point); err != nil {
			best.Polytope = polytope.Points()
			return best, &ConvergenceError{Err: err, Best: best}
		}
	}

	best.Polytope = polytope.Points()
	return best, &ConvergenceError{Err: ErrNotConverged, Best: best}
}

// completeTriangle turns the simplex into a non-degenerate triangle.
// A line, or a flat triangle reduced to its two extremes, is extended along the
// perpendicular of the line, then along the opposite one. When both sides are flat,
// ok is false and the unit perpendicular is returned instead.
func completeTriangle(simplex gjk.Simplex, support func(mgl64.Vec2) mgl64.Vec2) (triangle gjk.Simplex, normal mgl64.Vec2, ok bool) {
	points := simplex.Points()
	if len(points) == 3 && !isFlat(points[0], points[1], points[2]) {
		return simplex, mgl64.Vec2{}, true
	}

	from, to := farthestPair(points)
	edge := to.Sub(from)
	if edge.LenSqr() == 0 {
		// Every point coincides with the origin: no direction is better than another.
		return gjk.Simplex{}, mgl64.Vec2{0, 1}, false
	}

	perp := gjk.WindingCounterClockwise.Outward(edge)
	for _, direction := range []mgl64.Vec2{perp, perp.Mul(-1)} {
		point := support(direction)
		if !isFlat(from, to, point) {
			return gjk.NewTriangle(from, to, point), mgl64.Vec2{}, true
		}
	}

	return gjk.Simplex{}, perp.Normalize(), false
}

func isFlat(a, b, c mgl64.Vec2) bool {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return math.Abs(actor.Cross(ab, ac)) <= degenerateEpsilon*math.Sqrt(ab.LenSqr()*ac.LenSqr())
}

func farthestPair(points []mgl64.Vec2) (mgl64.Vec2, mgl64.Vec2) {
	p, q := points[0], points[1]
	best := q.Sub(p).LenSqr()

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if d := points[j].Sub(points[i]).LenSqr(); d > best {
				p, q, best = points[i], points[j], d
			}
		}
	}

	return p, q
}

// snapNormalToAxis clamps nearly-zero components of a normal vector to exactly zero,
// then renormalizes it. Axis-aligned contacts then report exact axis normals.
func snapNormalToAxis(normal mgl64.Vec2) mgl64.Vec2 {
	x := normal.X()
	y := normal.Y()

	if math.Abs(x) < NormalSnapThreshold {
		x = 0
	}
	if math.Abs(y) < NormalSnapThreshold {
		y = 0
	}

	clamped := mgl64.Vec2{x, y}
	length := clamped.Len()
	if length < NormalSnapThreshold {
		return mgl64.Vec2{0, 1}
	}

	return clamped.Mul(1.0 / length)
}
