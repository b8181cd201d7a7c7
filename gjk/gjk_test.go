package gjk

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Test helper functions

func createBoxBody(position mgl64.Vec2, halfExtents mgl64.Vec2) *actor.Body {
	return actor.NewBody(actor.NewBoxFromHalfExtents(halfExtents), position)
}

func createCircleBody(position mgl64.Vec2, radius float64) *actor.Body {
	return actor.NewBody(&actor.Circle{Radius: radius}, position)
}

func createSquareBody(position mgl64.Vec2, halfExtent, angle float64) *actor.Body {
	square, err := actor.NewConvexPolygon(
		mgl64.Vec2{-halfExtent, -halfExtent},
		mgl64.Vec2{halfExtent, -halfExtent},
		mgl64.Vec2{halfExtent, halfExtent},
		mgl64.Vec2{-halfExtent, halfExtent},
	)
	if err != nil {
		panic(err)
	}
	return actor.NewBody(square.Rotate(angle), position)
}

func mustCollide(t *testing.T, a, b *actor.Body) bool {
	t.Helper()

	collision, err := Collides(a, b)
	if err != nil {
		t.Fatalf("Collides(%v, %v) failed: %v", a.Transform.Position, b.Transform.Position, err)
	}
	return collision
}

// MinkowskiSupport tests

func TestMinkowskiSupport(t *testing.T) {
	t.Run("two separated circles along x-axis", func(t *testing.T) {
		a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
		b := createCircleBody(mgl64.Vec2{3, 0}, 1.0)

		support := MinkowskiSupport(a, b, mgl64.Vec2{1, 0})

		// max(A.x) - min(B.x) = 1 - 2 = -1
		if support != (mgl64.Vec2{-1, 0}) {
			t.Errorf("Expected support (-1, 0), got %v", support)
		}
	})

	t.Run("two overlapping circles", func(t *testing.T) {
		a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
		b := createCircleBody(mgl64.Vec2{1.5, 0}, 1.0)

		support := MinkowskiSupport(a, b, mgl64.Vec2{1, 0})

		// max(A.x) - min(B.x) = 1 - 0.5 = 0.5
		if support.X() != 0.5 {
			t.Errorf("Expected support.X = 0.5, got %v", support.X())
		}
	})

	t.Run("box corners", func(t *testing.T) {
		a := createBoxBody(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 2})
		b := createBoxBody(mgl64.Vec2{5, 5}, mgl64.Vec2{1, 1})

		support := MinkowskiSupport(a, b, mgl64.Vec2{1, 1})

		// (1, 2) - (4, 4)
		if support != (mgl64.Vec2{-3, -2}) {
			t.Errorf("Expected support (-3, -2), got %v", support)
		}
	})
}

// GJK collision detection tests - Circles

func TestGJK_Circles(t *testing.T) {
	tests := []struct {
		name      string
		positionB mgl64.Vec2
		radiusB   float64
		expected  bool
	}{
		{"overlapping", mgl64.Vec2{1.5, 0}, 1, true},
		{"concentric", mgl64.Vec2{0, 0}, 1, true},
		{"contained", mgl64.Vec2{0.2, -0.3}, 0.1, true},
		{"diagonal overlap", mgl64.Vec2{1, 1}, 1, true},
		{"separated", mgl64.Vec2{3, 0}, 1, false},
		{"separated diagonal", mgl64.Vec2{-1.5, 1.5}, 1, false},
		{"far away", mgl64.Vec2{100, -100}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := createCircleBody(mgl64.Vec2{0, 0}, 1)
			b := createCircleBody(tt.positionB, tt.radiusB)

			if got := mustCollide(t, a, b); got != tt.expected {
				t.Errorf("Collides = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGJK_Circles_NearMiss(t *testing.T) {
	// Two 0.9 radius circles, 2 apart: 0.2 gap.
	a := createCircleBody(mgl64.Vec2{-1, 0}, 0.9)
	b := createCircleBody(mgl64.Vec2{1, 0}, 0.9)

	if mustCollide(t, a, b) {
		t.Error("Expected no collision between circles 0.2 apart")
	}
}

// GJK collision detection tests - Boxes

func TestGJK_Boxes(t *testing.T) {
	tests := []struct {
		name      string
		positionB mgl64.Vec2
		expected  bool
	}{
		{"overlapping", mgl64.Vec2{1.5, 0}, true},
		{"overlapping corner", mgl64.Vec2{1.5, 1.5}, true},
		{"identical", mgl64.Vec2{0, 0}, true},
		{"touching", mgl64.Vec2{2, 0}, true},
		{"separated x", mgl64.Vec2{2.5, 0}, false},
		{"separated y", mgl64.Vec2{0.5, -2.1}, false},
		{"separated corner", mgl64.Vec2{2.1, 2.1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := createBoxBody(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1})
			b := createBoxBody(tt.positionB, mgl64.Vec2{1, 1})

			if got := mustCollide(t, a, b); got != tt.expected {
				t.Errorf("Collides = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGJK_MixedShapes(t *testing.T) {
	segment := actor.NewBody(actor.NewLineSegment(mgl64.Vec2{-2, 0}, mgl64.Vec2{2, 0}), mgl64.Vec2{0, 0})
	rectangle := actor.NewBody(actor.NewRectangle(mgl64.Vec2{0, 0}, mgl64.Vec2{2, 0}, 0.5), mgl64.Vec2{0, 0})

	tests := []struct {
		name     string
		a, b     *actor.Body
		expected bool
	}{
		{"circle crossing segment", createCircleBody(mgl64.Vec2{0, 0.5}, 1), segment, true},
		{"circle above segment", createCircleBody(mgl64.Vec2{0, 1.5}, 1), segment, false},
		{"dot inside circle", actor.NewBody(&actor.Dot{}, mgl64.Vec2{0.3, 0.3}), createCircleBody(mgl64.Vec2{0, 0}, 1), true},
		{"dot outside circle", actor.NewBody(&actor.Dot{}, mgl64.Vec2{0.8, 0.8}), createCircleBody(mgl64.Vec2{0, 0}, 1), false},
		{"box inside rectangle", createBoxBody(mgl64.Vec2{1, 0.25}, mgl64.Vec2{0.1, 0.1}), rectangle, true},
		{"box below rectangle", createBoxBody(mgl64.Vec2{1, -0.5}, mgl64.Vec2{0.25, 0.25}), rectangle, false},
		{"circle right of rectangle", createCircleBody(mgl64.Vec2{3, 0.25}, 0.75), rectangle, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustCollide(t, tt.a, tt.b); got != tt.expected {
				t.Errorf("Collides = %v, want %v", got, tt.expected)
			}
		})
	}
}

// Properties

func TestGJK_Symmetry(t *testing.T) {
	bodies := []*actor.Body{
		createCircleBody(mgl64.Vec2{0, 0}, 1),
		createCircleBody(mgl64.Vec2{1.2, 0.4}, 0.5),
		createBoxBody(mgl64.Vec2{-1.5, 0}, mgl64.Vec2{0.75, 0.25}),
		createSquareBody(mgl64.Vec2{0.5, -1.5}, 0.5, math.Pi/6),
		createCircleBody(mgl64.Vec2{5, 5}, 1),
	}

	for i, a := range bodies {
		for j, b := range bodies {
			ab := mustCollide(t, a, b)
			ba := mustCollide(t, b, a)
			if ab != ba {
				t.Errorf("bodies %d and %d: Collides(a, b) = %v but Collides(b, a) = %v", i, j, ab, ba)
			}
			if i == j && !ab {
				t.Errorf("body %d does not collide with itself", i)
			}
		}
	}
}

func TestGJK_TranslationInvariance(t *testing.T) {
	offsets := []mgl64.Vec2{{1000, 1000}, {-250, 37.5}, {0, -1e4}}

	pairs := []struct {
		a, b     *actor.Body
		expected bool
	}{
		{createCircleBody(mgl64.Vec2{0, 0}, 0.5), createCircleBody(mgl64.Vec2{0.9, 0}, 0.5), true},
		{createCircleBody(mgl64.Vec2{0, 0}, 0.5), createCircleBody(mgl64.Vec2{1.1, 0}, 0.5), false},
		{createBoxBody(mgl64.Vec2{0, 0}, mgl64.Vec2{0.75, 0.75}), createCircleBody(mgl64.Vec2{0.9, 0.3}, 0.25), true},
		{createBoxBody(mgl64.Vec2{0, 0}, mgl64.Vec2{0.75, 0.75}), createCircleBody(mgl64.Vec2{1.1, 1.1}, 0.25), false},
	}

	for i, pair := range pairs {
		for _, offset := range offsets {
			a := actor.NewBody(pair.a.Shape, pair.a.Transform.Position.Add(offset))
			b := actor.NewBody(pair.b.Shape, pair.b.Transform.Position.Add(offset))

			if got := mustCollide(t, a, b); got != pair.expected {
				t.Errorf("pair %d at offset %v: Collides = %v, want %v", i, offset, got, pair.expected)
			}
		}
	}
}

// TestGJK_RotatingSweeps moves a shape around another, once close enough to always
// overlap and once far enough to never overlap, at the origin and far from it.
func TestGJK_RotatingSweeps(t *testing.T) {
	centers := []mgl64.Vec2{{0, 0}, {1000, 1000}}

	sweeps := []struct {
		name     string
		a        func(center mgl64.Vec2, angle float64) *actor.Body
		b        func(center mgl64.Vec2) *actor.Body
		distance float64
		expected bool
	}{
		{
			name:     "circle circle collide",
			a:        func(center mgl64.Vec2, _ float64) *actor.Body { return createCircleBody(center, 0.5) },
			b:        func(center mgl64.Vec2) *actor.Body { return createCircleBody(center, 0.5) },
			distance: 0.99,
			expected: true,
		},
		{
			name:     "circle circle apart",
			a:        func(center mgl64.Vec2, _ float64) *actor.Body { return createCircleBody(center, 0.5) },
			b:        func(center mgl64.Vec2) *actor.Body { return createCircleBody(center, 0.5) },
			distance: 1.01,
			expected: false,
		},
		{
			name:     "circle box collide",
			a:        func(center mgl64.Vec2, _ float64) *actor.Body { return createCircleBody(center, 0.5) },
			b:        func(center mgl64.Vec2) *actor.Body { return createBoxBody(center, mgl64.Vec2{0.5, 0.5}) },
			distance: 0.9,
			expected: true,
		},
		{
			name:     "circle box apart",
			a:        func(center mgl64.Vec2, _ float64) *actor.Body { return createCircleBody(center, 0.5) },
			b:        func(center mgl64.Vec2) *actor.Body { return createBoxBody(center, mgl64.Vec2{0.5, 0.5}) },
			distance: 1.3,
			expected: false,
		},
		{
			name:     "rotated square circle collide",
			a:        func(center mgl64.Vec2, angle float64) *actor.Body { return createSquareBody(center, 0.5, angle) },
			b:        func(center mgl64.Vec2) *actor.Body { return createCircleBody(center, 0.5) },
			distance: 0.9,
			expected: true,
		},
		{
			name:     "rotated square circle apart",
			a:        func(center mgl64.Vec2, angle float64) *actor.Body { return createSquareBody(center, 0.5, angle) },
			b:        func(center mgl64.Vec2) *actor.Body { return createCircleBody(center, 0.5) },
			distance: 1.3,
			expected: false,
		},
	}

	for _, sweep := range sweeps {
		for _, center := range centers {
			t.Run(fmt.Sprintf("%s at %v", sweep.name, center), func(t *testing.T) {
				for degrees := 0; degrees < 360; degrees += 3 {
					angle := float64(degrees) * math.Pi / 180
					offset := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(sweep.distance)

					a := sweep.a(center, angle)
					b := sweep.b(center.Add(offset))

					if got := mustCollide(t, a, b); got != sweep.expected {
						t.Errorf("angle %d: Collides = %v, want %v", degrees, got, sweep.expected)
					}
				}
			})
		}
	}
}

func TestGJK_ReturnsTriangleOnCollision(t *testing.T) {
	pairs := [][2]*actor.Body{
		{createCircleBody(mgl64.Vec2{0, 0}, 1), createCircleBody(mgl64.Vec2{0.5, 0.5}, 1)},
		{createBoxBody(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1}), createBoxBody(mgl64.Vec2{1.5, 0.5}, mgl64.Vec2{1, 1})},
		{createCircleBody(mgl64.Vec2{2, 2}, 1), createCircleBody(mgl64.Vec2{2, 2}, 1)},
	}

	for i, pair := range pairs {
		collision, simplex, err := GJK(pair[0], pair[1])
		if err != nil {
			t.Fatalf("pair %d: GJK failed: %v", i, err)
		}
		if !collision {
			t.Fatalf("pair %d: expected a collision", i)
		}
		if simplex.Kind() != SimplexTriangle {
			t.Errorf("pair %d: simplex is a %v, want a triangle", i, simplex.Kind())
		}
	}
}

func TestGJK_NoErrorOnVerdict(t *testing.T) {
	_, _, err := GJK(createCircleBody(mgl64.Vec2{0, 0}, 1), createCircleBody(mgl64.Vec2{10, 0}, 1))
	if errors.Is(err, ErrMaxIterations) {
		t.Errorf("unexpected error %v", err)
	}
}

// spiralShape answers each query with a point nearly perpendicular to the direction,
// just past the origin. No convex shape does that: the simplex only slivers around
// the origin and GJK never reaches a verdict.
type spiralShape struct {
	calls int
}

func (s *spiralShape) Start() mgl64.Vec2 {
	return mgl64.Vec2{1, 0}
}

func (s *spiralShape) Support(direction mgl64.Vec2) mgl64.Vec2 {
	s.calls++
	if s.calls == 1 {
		return mgl64.Vec2{1, 1}
	}

	u := direction.Normalize()
	return actor.Perpendicular(u).Mul(1000).Add(u.Mul(0.01))
}

func (s *spiralShape) Type() actor.ShapeType { return actor.ShapeTypePolygon }

func TestGJK_MaxIterations(t *testing.T) {
	shape := &spiralShape{}
	a := actor.NewBody(shape, mgl64.Vec2{0, 0})
	b := actor.NewBody(&actor.Dot{}, mgl64.Vec2{0, 0})

	collision, _, err := GJK(a, b)
	if !errors.Is(err, ErrMaxIterations) {
		t.Fatalf("error = %v, want ErrMaxIterations", err)
	}
	if collision {
		t.Error("a capped search must not report a collision")
	}
	// The initial support, then one per iteration
	if shape.calls != MaxIterations+1 {
		t.Errorf("support called %d times, want %d", shape.calls, MaxIterations+1)
	}

	shape.calls = 0
	if _, err := Collides(a, b); !errors.Is(err, ErrMaxIterations) {
		t.Errorf("Collides error = %v, want ErrMaxIterations", err)
	}
}

func TestGJK_OffsetNonCollision(t *testing.T) {
	shapes := map[string]func() actor.Shape{
		"circle":    func() actor.Shape { return &actor.Circle{Radius: 0.5} },
		"box":       func() actor.Shape { return actor.NewBoxFromHalfExtents(mgl64.Vec2{0.5, 0.5}) },
		"rectangle": func() actor.Shape { return actor.NewRectangle(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 1) },
	}

	tests := []struct {
		shapeA string
		shapeB string
	}{
		{"circle", "circle"},
		{"circle", "box"},
		{"box", "box"},
		{"rectangle", "rectangle"},
	}

	for _, tt := range tests {
		t.Run(tt.shapeA+"/"+tt.shapeB, func(t *testing.T) {
			a := actor.NewBody(shapes[tt.shapeA](), mgl64.Vec2{0, 0})
			b := actor.NewBody(shapes[tt.shapeB](), mgl64.Vec2{1000, 1000})

			if mustCollide(t, a, b) {
				t.Errorf("%s at origin collides with %s at (1000, 1000)", tt.shapeA, tt.shapeB)
			}
			if mustCollide(t, b, a) {
				t.Errorf("%s at (1000, 1000) collides with %s at origin", tt.shapeB, tt.shapeA)
			}
		})
	}
}

// Simplex expansion tests

func TestLine(t *testing.T) {
	t.Run("origin beside the line", func(t *testing.T) {
		simplex := NewLine(mgl64.Vec2{-1, 1}, mgl64.Vec2{1, 1})
		var direction mgl64.Vec2

		line(&simplex, &direction)

		if simplex.Len() != 2 {
			t.Errorf("Expected simplex length 2, got %d", simplex.Len())
		}
		if direction != (mgl64.Vec2{0, -4}) {
			t.Errorf("Expected direction (0, -4), got %v", direction)
		}
	})

	t.Run("origin on the line", func(t *testing.T) {
		simplex := NewLine(mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0})
		var direction mgl64.Vec2

		line(&simplex, &direction)

		if direction.LenSqr() == 0 {
			t.Fatal("Expected a non-zero direction")
		}
		if direction.Dot(mgl64.Vec2{1, 0}) != 0 {
			t.Errorf("Expected a direction perpendicular to the line, got %v", direction)
		}
	})

	t.Run("zero length line", func(t *testing.T) {
		simplex := NewLine(mgl64.Vec2{1, 1}, mgl64.Vec2{1, 1})
		var direction mgl64.Vec2

		line(&simplex, &direction)

		if direction != (mgl64.Vec2{-1, -1}) {
			t.Errorf("Expected direction toward the origin (-1, -1), got %v", direction)
		}
	})
}

func TestTriangle(t *testing.T) {
	t.Run("origin inside", func(t *testing.T) {
		simplex := NewTriangle(mgl64.Vec2{-1, -1}, mgl64.Vec2{1, -1}, mgl64.Vec2{0, 1})
		var direction mgl64.Vec2

		if !triangle(&simplex, &direction) {
			t.Error("Expected the triangle to contain the origin")
		}
		if simplex.Len() != 3 {
			t.Errorf("Expected the triangle to be kept, got %d points", simplex.Len())
		}
	})

	t.Run("origin outside AC", func(t *testing.T) {
		b := mgl64.Vec2{-2, 1}
		c := mgl64.Vec2{2, 1}
		a := mgl64.Vec2{-3, -1}
		simplex := NewTriangle(b, c, a)
		var direction mgl64.Vec2

		if triangle(&simplex, &direction) {
			t.Fatal("Expected no containment")
		}
		if got := simplex.Points(); len(got) != 2 || got[0] != c || got[1] != a {
			t.Errorf("Expected Line(C, A), got %v", got)
		}
		if direction != (mgl64.Vec2{16, -40}) {
			t.Errorf("Expected direction (16, -40), got %v", direction)
		}
	})

	t.Run("origin outside AB", func(t *testing.T) {
		b := mgl64.Vec2{-2, 1}
		c := mgl64.Vec2{2, 1}
		a := mgl64.Vec2{3, -1}
		simplex := NewTriangle(b, c, a)
		var direction mgl64.Vec2

		if triangle(&simplex, &direction) {
			t.Fatal("Expected no containment")
		}
		if got := simplex.Points(); len(got) != 2 || got[0] != b || got[1] != a {
			t.Errorf("Expected Line(B, A), got %v", got)
		}
		if direction != (mgl64.Vec2{-16, -40}) {
			t.Errorf("Expected direction (-16, -40), got %v", direction)
		}
	})

	t.Run("collinear containing origin", func(t *testing.T) {
		simplex := NewTriangle(mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{3, 0})
		var direction mgl64.Vec2

		if !triangle(&simplex, &direction) {
			t.Error("Expected the flat triangle to touch the origin")
		}
	})

	t.Run("collinear away from origin", func(t *testing.T) {
		simplex := NewTriangle(mgl64.Vec2{1, 0}, mgl64.Vec2{2, 0}, mgl64.Vec2{3, 0})
		var direction mgl64.Vec2

		if triangle(&simplex, &direction) {
			t.Fatal("Expected no containment")
		}
		if got := simplex.Points(); len(got) != 2 || got[0] != (mgl64.Vec2{3, 0}) || got[1] != (mgl64.Vec2{1, 0}) {
			t.Errorf("Expected Line((3, 0), (1, 0)), got %v", got)
		}
		if direction != (mgl64.Vec2{-1, 0}) {
			t.Errorf("Expected direction (-1, 0), got %v", direction)
		}
	})
}

func TestTripleProduct(t *testing.T) {
	a := mgl64.Vec2{1, 0}
	b := mgl64.Vec2{0, 1}

	// (a x b) x a rotates a by +90 degrees
	if got := tripleProduct(a, b, a); got != (mgl64.Vec2{0, 1}) {
		t.Errorf("tripleProduct = %v, want (0, 1)", got)
	}
}

// Benchmark tests

func BenchmarkGJK_Circles_Intersecting(b *testing.B) {
	a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
	body := createCircleBody(mgl64.Vec2{1.5, 0}, 1.0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GJK(a, body)
	}
}

func BenchmarkGJK_Circles_Separated(b *testing.B) {
	a := createCircleBody(mgl64.Vec2{0, 0}, 1.0)
	body := createCircleBody(mgl64.Vec2{10, 0}, 1.0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GJK(a, body)
	}
}

func BenchmarkGJK_Boxes_Intersecting(b *testing.B) {
	a := createBoxBody(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1})
	box := createBoxBody(mgl64.Vec2{1.5, 0}, mgl64.Vec2{1, 1})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GJK(a, box)
	}
}
