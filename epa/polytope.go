package epa

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Edge is the working record of one polytope edge, recomputed at every iteration.
type Edge struct {
	A, B     mgl64.Vec2 // End points, in ring order
	Normal   mgl64.Vec2 // Outward unit normal
	Distance float64    // Signed distance from the origin to the edge line
	Index    int        // Ring index where a point expanding this edge is inserted
}

// Straddles reports whether point lies inside the wedge spanned by the edge end points,
// seen from the origin: the determinants of point against both end points must not
// share a strict sign. A support point failing this test would be inserted out of order
// and fold the polytope.
func (e Edge) Straddles(point mgl64.Vec2) bool {
	return snapZero(actor.Cross(point, e.A), point, e.A)*snapZero(actor.Cross(point, e.B), point, e.B) <= 0
}

// snapZero clamps a cross product to zero when it is negligible relative to its operands.
func snapZero(cross float64, u, v mgl64.Vec2) float64 {
	if math.Abs(cross) <= straddleEpsilon*math.Sqrt(u.LenSqr()*v.LenSqr()) {
		return 0
	}
	return cross
}

// Polytope is the convex polygon EPA expands: a ring of Minkowski difference points
// sharing a single winding, fixed from the starting triangle.
type Polytope struct {
	points  []mgl64.Vec2
	edges   []Edge
	winding gjk.Winding
}

// polytopePool recycles the ring and edge buffers between EPA runs.
var polytopePool = sync.Pool{
	New: func() interface{} {
		return &Polytope{
			points: make([]mgl64.Vec2, 0, polytopeInitialCapacity),
			edges:  make([]Edge, 0, polytopeInitialCapacity),
		}
	},
}

// NewPolytope creates a polytope from a non-degenerate triangle simplex.
func NewPolytope(triangle gjk.Simplex) *Polytope {
	p := &Polytope{}
	p.Reset(triangle)
	return p
}

// Reset clears the buffers and restarts from triangle.
func (p *Polytope) Reset(triangle gjk.Simplex) {
	p.winding = triangle.Winding()
	p.points = p.points[:0]
	for point := range triangle.All() {
		p.points = append(p.points, point)
	}
	p.edges = p.edges[:0]
}

func (p *Polytope) Len() int {
	return len(p.points)
}

func (p *Polytope) Winding() gjk.Winding {
	return p.winding
}

// Points returns a copy of the ring, in order.
func (p *Polytope) Points() []mgl64.Vec2 {
	return slices.Clone(p.points)
}

// Edges computes every edge of the ring, ordered by increasing distance to the origin.
// Zero length edges carry no normal and are left out.
// The returned slice is reused by the next call.
func (p *Polytope) Edges() []Edge {
	p.edges = p.edges[:0]
	n := len(p.points)

	for i := 0; i < n; i++ {
		a := p.points[i]
		b := p.points[(i+1)%n]
		edge := b.Sub(a)
		if edge.LenSqr() == 0 {
			continue
		}

		normal := p.winding.Outward(edge).Normalize()
		p.edges = append(p.edges, Edge{
			A:        a,
			B:        b,
			Normal:   normal,
			Distance: normal.Dot(a),
			Index:    i + 1,
		})
	}

	slices.SortStableFunc(p.edges, func(x, y Edge) int {
		return cmp.Compare(x.Distance, y.Distance)
	})

	return p.edges
}

// ClosestEdge returns the edge nearest to the origin whose support point straddles it,
// along with that support point. Edges failing the test are skipped.
// When no edge passes, the nearest edge is returned with ok set to false.
func (p *Polytope) ClosestEdge(support func(direction mgl64.Vec2) mgl64.Vec2) (edge Edge, point mgl64.Vec2, ok bool) {
	edges := p.Edges()

	for _, candidate := range edges {
		point = support(candidate.Normal)
		if candidate.Straddles(point) {
			return candidate, point, true
		}
	}

	if len(edges) == 0 {
		return Edge{}, mgl64.Vec2{}, false
	}
	return edges[0], mgl64.Vec2{}, false
}

// Insert adds point at index, growing the ring by one, then checks the three corners
// the insertion touched are still convex.
func (p *Polytope) Insert(index int, point mgl64.Vec2) error {
	p.points = slices.Insert(p.points, index, point)

	n := len(p.points)
	for k := -1; k <= 1; k++ {
		i := (index + k + n) % n
		if !p.convexAt(i) {
			return ErrNonConvex
		}
	}

	return nil
}

// isConvex checks every corner of the ring against the winding.
func (p *Polytope) isConvex() bool {
	for i := range p.points {
		if !p.convexAt(i) {
			return false
		}
	}
	return true
}

func (p *Polytope) convexAt(i int) bool {
	n := len(p.points)
	prev := p.points[(i-1+n)%n]
	cur := p.points[i]
	next := p.points[(i+1)%n]

	in := cur.Sub(prev)
	out := next.Sub(cur)
	turn := actor.Cross(in, out)
	if p.winding == gjk.WindingClockwise {
		turn = -turn
	}

	// Collinear corners are expected on flat parts of the Minkowski difference.
	return turn >= -convexityEpsilon*math.Sqrt(in.LenSqr()*out.LenSqr())
}
