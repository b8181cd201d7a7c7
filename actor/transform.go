package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position in 2D space.
// Rotation is not part of it: rotated shapes carry the rotation in their own points.
type Transform struct {
	Position mgl64.Vec2
}
