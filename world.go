package feather2d

import (
	"context"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/epa"
)

const DEFAULT_WORKERS = 1

// World is a set of bodies queried against each other.
type World struct {
	// List of all bodies in the world
	Bodies  []*actor.Body
	Workers int
	// EPA parameters, the package defaults when zero
	Config epa.Config
}

// AddBody adds a body to the world
func (w *World) AddBody(body *actor.Body) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a body from the world
func (w *World) RemoveBody(body *actor.Body) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}
}

// Pairs returns every pair of bodies whose bounds overlap, in body order.
// This is an O(n²) brute-force approach suitable for small numbers of bodies
func (w *World) Pairs() []Pair {
	bounds := make([]actor.AABB, len(w.Bodies))
	for i, body := range w.Bodies {
		bounds[i] = body.Bounds()
	}

	var pairs []Pair
	for i := range w.Bodies {
		for j := i + 1; j < len(w.Bodies); j++ {
			if bounds[i].Overlaps(bounds[j]) {
				pairs = append(pairs, Pair{BodyA: w.Bodies[i], BodyB: w.Bodies[j]})
			}
		}
	}

	return pairs
}

// Contacts runs the narrow phase on every candidate pair.
func (w *World) Contacts(ctx context.Context) ([]Contact, error) {
	config := w.Config
	if config == (epa.Config{}) {
		config = epa.DefaultConfig()
	}

	return NarrowPhaseWithConfig(ctx, w.Pairs(), max(DEFAULT_WORKERS, w.Workers), config)
}
