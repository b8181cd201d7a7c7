package actor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeCircle ShapeType = iota
	ShapeTypeBox
	ShapeTypePolygon
	ShapeTypeDot
)

func (t ShapeType) String() string {
	switch t {
	case ShapeTypeCircle:
		return "circle"
	case ShapeTypeBox:
		return "box"
	case ShapeTypePolygon:
		return "polygon"
	case ShapeTypeDot:
		return "dot"
	}
	return "unknown"
}

// ErrEmptyPolygon is returned when a polygon is built without any point.
var ErrEmptyPolygon = errors.New("convex polygon needs at least one point")

// Shape is the capability every convex collision shape must implement.
// Both methods work in the shape's local space; the owning Body applies its translation.
type Shape interface {
	// Start returns any point inside the shape. GJK uses it to pick its first direction.
	Start() mgl64.Vec2
	// Support returns the point of the shape farthest along direction.
	Support(direction mgl64.Vec2) mgl64.Vec2
	Type() ShapeType
}

// Circle represents a circular collision shape
type Circle struct {
	Center mgl64.Vec2
	Radius float64
}

func (c *Circle) Start() mgl64.Vec2 {
	return c.Center
}

// Support returns Center + normalize(direction) * Radius.
// A zero direction has no farthest point, any boundary point qualifies: the center is returned.
func (c *Circle) Support(direction mgl64.Vec2) mgl64.Vec2 {
	if direction.LenSqr() == 0 {
		return c.Center
	}
	return c.Center.Add(direction.Normalize().Mul(c.Radius))
}

func (c *Circle) Type() ShapeType { return ShapeTypeCircle }

// Box represents an axis-aligned box, defined by its two opposite corners.
type Box struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// NewBoxFromHalfExtents creates a box centered on the local origin.
func NewBoxFromHalfExtents(halfExtents mgl64.Vec2) *Box {
	return &Box{Min: halfExtents.Mul(-1), Max: halfExtents}
}

func (b *Box) Start() mgl64.Vec2 {
	return b.Min.Add(b.Max.Sub(b.Min).Mul(0.5))
}

func (b *Box) Support(direction mgl64.Vec2) mgl64.Vec2 {
	x, y := b.Min.X(), b.Min.Y()

	if direction.X() > 0 {
		x = b.Max.X()
	}
	if direction.Y() > 0 {
		y = b.Max.Y()
	}

	return mgl64.Vec2{x, y}
}

func (b *Box) Type() ShapeType { return ShapeTypeBox }

// ConvexPolygon is an ordered list of points, consistently wound (clockwise or
// counter-clockwise). Two points make a line segment.
type ConvexPolygon struct {
	Points []mgl64.Vec2
}

// NewConvexPolygon copies points into a new polygon.
func NewConvexPolygon(points ...mgl64.Vec2) (*ConvexPolygon, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPolygon
	}

	return &ConvexPolygon{Points: append([]mgl64.Vec2(nil), points...)}, nil
}

// NewRectangle builds the rectangle having from-to as one side, extruded by thickness
// along the left perpendicular of that side.
func NewRectangle(from, to mgl64.Vec2, thickness float64) *ConvexPolygon {
	side := to.Sub(from)
	perp := mgl64.Vec2{-side.Y(), side.X()}
	if perp.LenSqr() > 0 {
		perp = perp.Normalize().Mul(thickness)
	}

	return &ConvexPolygon{Points: []mgl64.Vec2{from, to, to.Add(perp), from.Add(perp)}}
}

// NewLineSegment builds a degenerate two points polygon.
func NewLineSegment(from, to mgl64.Vec2) *ConvexPolygon {
	return &ConvexPolygon{Points: []mgl64.Vec2{from, to}}
}

// Start returns the average of the vertices, which lies inside any convex polygon.
func (p *ConvexPolygon) Start() mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, point := range p.Points {
		sum = sum.Add(point)
	}

	return sum.Mul(1.0 / float64(len(p.Points)))
}

// Support scans every vertex and keeps the first one maximizing the dot product.
// A hill-climbing walk would be faster on large polygons but relies on the dot
// product being unimodal along the vertex order, which collinear or duplicated
// vertices break.
func (p *ConvexPolygon) Support(direction mgl64.Vec2) mgl64.Vec2 {
	best := p.Points[0]
	bestDot := best.Dot(direction)

	for _, point := range p.Points[1:] {
		if dot := point.Dot(direction); dot > bestDot {
			best = point
			bestDot = dot
		}
	}

	return best
}

func (p *ConvexPolygon) Type() ShapeType { return ShapeTypePolygon }

// Rotate returns a copy of the polygon rotated by angle radians around the local origin.
func (p *ConvexPolygon) Rotate(angle float64) *ConvexPolygon {
	rotation := mgl64.Rotate2D(angle)
	points := make([]mgl64.Vec2, len(p.Points))
	for i, point := range p.Points {
		points[i] = rotation.Mul2x1(point)
	}

	return &ConvexPolygon{Points: points}
}

// Translate returns a copy of the polygon with every point moved by offset.
func (p *ConvexPolygon) Translate(offset mgl64.Vec2) *ConvexPolygon {
	points := make([]mgl64.Vec2, len(p.Points))
	for i, point := range p.Points {
		points[i] = point.Add(offset)
	}

	return &ConvexPolygon{Points: points}
}

// Dot is a single point shape
type Dot struct {
	Position mgl64.Vec2
}

func (d *Dot) Start() mgl64.Vec2 {
	return d.Position
}

func (d *Dot) Support(direction mgl64.Vec2) mgl64.Vec2 {
	return d.Position
}

func (d *Dot) Type() ShapeType { return ShapeTypeDot }
