package main

import (
	"context"
	"fmt"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

func printContact(name string, contact feather2d.Contact) {
	fmt.Printf("🎯 %s\n", name)
	fmt.Printf("   Body A pos: %v\n", contact.BodyA.Transform.Position)
	fmt.Printf("   Body B pos: %v\n", contact.BodyB.Transform.Position)
	fmt.Printf("   Normal: %v\n", contact.Normal)
	fmt.Printf("   Depth: %.6f\n", contact.Depth)
	fmt.Printf("   Separation: %v\n", contact.Separation())
	fmt.Printf("   EPA iterations: %d\n", contact.Iterations)
}

func main() {
	ground := actor.NewBody(actor.NewRectangle(mgl64.Vec2{-10, 0}, mgl64.Vec2{10, 0}, 1), mgl64.Vec2{0, -1})
	ball := actor.NewBody(&actor.Circle{Radius: 0.5}, mgl64.Vec2{0, 0.3})
	crate := actor.NewBody(actor.NewBoxFromHalfExtents(mgl64.Vec2{0.5, 0.5}), mgl64.Vec2{0.8, 0.4})

	wedge, err := actor.NewConvexPolygon(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1})
	if err != nil {
		panic(err)
	}
	ramp := actor.NewBody(wedge.Rotate(mgl64.DegToRad(15)), mgl64.Vec2{5, 0})

	// Single query
	contact, collides, err := feather2d.Collide(ball, ground)
	if err != nil {
		panic(err)
	}
	fmt.Printf("🔍 ball vs ground collides: %t\n", collides)
	if collides {
		printContact("ball vs ground", contact)
	}

	// Boolean check only
	collides, err = gjk.Collides(ramp, crate)
	if err != nil {
		panic(err)
	}
	fmt.Printf("🔍 ramp vs crate collides: %t\n", collides)

	// Every overlapping pair of the world, on two workers
	world := &feather2d.World{Workers: 2}
	world.AddBody(ground)
	world.AddBody(ball)
	world.AddBody(crate)
	world.AddBody(ramp)

	contacts, err := world.Contacts(context.Background())
	if err != nil {
		panic(err)
	}
	fmt.Printf("🔧 world: %d bodies, %d contacts\n", len(world.Bodies), len(contacts))
	for i, c := range contacts {
		printContact(fmt.Sprintf("contact %d (pair %d)", i, c.PairIndex), c)
	}
}
