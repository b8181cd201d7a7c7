package actor

import "github.com/go-gl/mathgl/mgl64"

// Body is a shape placed in the world. The shape keeps its local geometry, the
// transform is only applied when the shape is queried.
type Body struct {
	Shape     Shape
	Transform Transform
}

// NewBody places shape at position.
func NewBody(shape Shape, position mgl64.Vec2) *Body {
	return &Body{
		Shape:     shape,
		Transform: Transform{Position: position},
	}
}

// SupportWorld returns the farthest point of the body along direction, in world space.
func (b *Body) SupportWorld(direction mgl64.Vec2) mgl64.Vec2 {
	return b.Transform.Position.Add(b.Shape.Support(direction))
}

// StartWorld returns an interior point of the body, in world space.
func (b *Body) StartWorld() mgl64.Vec2 {
	return b.Transform.Position.Add(b.Shape.Start())
}

// Bounds computes the world AABB of the body from its support points along both axes.
// It is exact for every convex shape.
func (b *Body) Bounds() AABB {
	return AABB{
		Min: mgl64.Vec2{
			b.SupportWorld(mgl64.Vec2{-1, 0}).X(),
			b.SupportWorld(mgl64.Vec2{0, -1}).Y(),
		},
		Max: mgl64.Vec2{
			b.SupportWorld(mgl64.Vec2{1, 0}).X(),
			b.SupportWorld(mgl64.Vec2{0, 1}).Y(),
		},
	}
}
