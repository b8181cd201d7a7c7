package feather2d

import (
	"context"
	"fmt"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/epa"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Pair represents two bodies to test against each other
type Pair struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

// Contact describes an overlap between two bodies.
// Normal points from BodyA toward BodyB: moving BodyB by Normal * Depth separates them.
type Contact struct {
	BodyA      *actor.Body
	BodyB      *actor.Body
	Normal     mgl64.Vec2
	Depth      float64
	Iterations int // EPA iterations
	PairIndex  int // Position of the pair in the NarrowPhase input
}

// Separation returns the minimum translation vector to apply to BodyB.
func (c Contact) Separation() mgl64.Vec2 {
	return c.Normal.Mul(c.Depth)
}

// Collide runs GJK then, when the bodies overlap, EPA with the default configuration.
func Collide(a, b *actor.Body) (Contact, bool, error) {
	return CollideWithConfig(a, b, epa.DefaultConfig())
}

// CollideWithConfig is Collide with explicit EPA parameters.
// On EPA failure the best estimate is still returned along with the error.
func CollideWithConfig(a, b *actor.Body, config epa.Config) (Contact, bool, error) {
	collision, simplex, err := gjk.GJK(a, b)
	if err != nil {
		return Contact{}, false, err
	}
	if !collision {
		return Contact{}, false, nil
	}

	result, err := epa.SolveWithConfig(a, b, simplex, config)
	contact := Contact{
		BodyA:      a,
		BodyB:      b,
		Normal:     result.Normal,
		Depth:      result.Depth,
		Iterations: result.Iterations,
	}

	return contact, true, err
}

// NarrowPhase resolves independent pairs on workersCount goroutines, with the default
// EPA configuration. See NarrowPhaseWithConfig.
func NarrowPhase(ctx context.Context, pairs []Pair, workersCount int) ([]Contact, error) {
	return NarrowPhaseWithConfig(ctx, pairs, workersCount, epa.DefaultConfig())
}

// NarrowPhaseWithConfig returns a contact for every overlapping pair, in input order.
// Each query runs on a single goroutine; pairs are split in contiguous chunks across
// workers. The first failure cancels the remaining pairs and is returned.
func NarrowPhaseWithConfig(ctx context.Context, pairs []Pair, workersCount int, config epa.Config) ([]Contact, error) {
	contacts := make([]Contact, len(pairs))
	collides := make([]bool, len(pairs))

	err := task(ctx, workersCount, pairs, func(i int, pair Pair) error {
		contact, collision, err := CollideWithConfig(pair.BodyA, pair.BodyB, config)
		if err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}

		contact.PairIndex = i
		contacts[i] = contact
		collides[i] = collision
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]Contact, 0, len(pairs))
	for i, contact := range contacts {
		if collides[i] {
			result = append(result, contact)
		}
	}

	return result, nil
}
