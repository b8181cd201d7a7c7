package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Perpendicular returns v rotated by +90 degrees.
func Perpendicular(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// Cross returns the z component of the 3D cross product of a and b.
// Positive when b is counter-clockwise from a.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// IsFinite reports whether both components are neither NaN nor infinite.
func IsFinite(v mgl64.Vec2) bool {
	return !math.IsNaN(v.X()) && !math.IsNaN(v.Y()) && !math.IsInf(v.X(), 0) && !math.IsInf(v.Y(), 0)
}
