package feather2d

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldAddRemoveBody(t *testing.T) {
	world := &World{}
	a := createCircle(mgl64.Vec2{0, 0}, 1)
	b := createCircle(mgl64.Vec2{1, 0}, 1)

	world.AddBody(a)
	world.AddBody(b)
	if len(world.Bodies) != 2 {
		t.Fatalf("got %d bodies, want 2", len(world.Bodies))
	}

	world.RemoveBody(a)
	if len(world.Bodies) != 1 || world.Bodies[0] != b {
		t.Errorf("RemoveBody left %v", world.Bodies)
	}

	// Removing an unknown body is a no-op
	world.RemoveBody(a)
	if len(world.Bodies) != 1 {
		t.Errorf("got %d bodies, want 1", len(world.Bodies))
	}
}

func TestWorldPairs(t *testing.T) {
	world := &World{}
	world.AddBody(createCircle(mgl64.Vec2{0, 0}, 1))
	world.AddBody(createBox(mgl64.Vec2{1.5, 0}, mgl64.Vec2{1, 1}))
	world.AddBody(createCircle(mgl64.Vec2{10, 10}, 1))
	// Bounds overlap at the corner, shapes do not
	world.AddBody(createCircle(mgl64.Vec2{-1.8, -1.8}, 1))

	pairs := world.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].BodyA != world.Bodies[0] || pairs[0].BodyB != world.Bodies[1] {
		t.Error("first pair should be bodies 0 and 1")
	}
	if pairs[1].BodyA != world.Bodies[0] || pairs[1].BodyB != world.Bodies[3] {
		t.Error("second pair should be bodies 0 and 3")
	}
}

func TestWorldContacts(t *testing.T) {
	world := &World{Workers: 4}
	world.AddBody(createCircle(mgl64.Vec2{0, 0}, 1))
	world.AddBody(createBox(mgl64.Vec2{1.5, 0}, mgl64.Vec2{1, 1}))
	world.AddBody(createCircle(mgl64.Vec2{10, 10}, 1))
	world.AddBody(createCircle(mgl64.Vec2{-1.8, -1.8}, 1))

	contacts, err := world.Contacts(context.Background())
	if err != nil {
		t.Fatalf("Contacts failed: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(contacts))
	}
	if contacts[0].BodyA != world.Bodies[0] || contacts[0].BodyB != world.Bodies[1] {
		t.Error("contact should be between bodies 0 and 1")
	}
}
