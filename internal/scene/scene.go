// Package scene reads YAML scene descriptions into positioned bodies.
//
// A scene lists named bodies, each carrying exactly one shape key, and may
// override the solver parameters:
//
//	solver: {tolerance: 1.0e-6}
//	bodies:
//	  - name: a
//	    position: [0, 0]
//	    circle: {center: [0, 0], radius: 0.5}
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/epa"
)

var (
	ErrNoShape       = errors.New("body has no shape")
	ErrManyShapes    = errors.New("body has more than one shape")
	ErrNegativeSize  = errors.New("shape size must not be negative")
	ErrDuplicateName = errors.New("duplicate body name")
	ErrNoBodies      = errors.New("scene has no bodies")
)

type CircleSpec struct {
	Center mgl64.Vec2 `yaml:"center"`
	Radius float64    `yaml:"radius"`
}

type BoxSpec struct {
	Min mgl64.Vec2 `yaml:"min"`
	Max mgl64.Vec2 `yaml:"max"`
}

type PolygonSpec struct {
	Points []mgl64.Vec2 `yaml:"points"`
}

type RectangleSpec struct {
	From      mgl64.Vec2 `yaml:"from"`
	To        mgl64.Vec2 `yaml:"to"`
	Thickness float64    `yaml:"thickness"`
}

type SegmentSpec struct {
	From mgl64.Vec2 `yaml:"from"`
	To   mgl64.Vec2 `yaml:"to"`
}

// BodySpec is one entry of the bodies list.
type BodySpec struct {
	Name      string         `yaml:"name"`
	Position  mgl64.Vec2     `yaml:"position"`
	Circle    *CircleSpec    `yaml:"circle"`
	Box       *BoxSpec       `yaml:"box"`
	Polygon   *PolygonSpec   `yaml:"polygon"`
	Rectangle *RectangleSpec `yaml:"rectangle"`
	Segment   *SegmentSpec   `yaml:"segment"`
	Dot       *mgl64.Vec2    `yaml:"dot"`
}

// Scene is the decoded file. Solver holds only the keys the file sets.
type Scene struct {
	Solver epa.Config `yaml:"solver"`
	Bodies []BodySpec `yaml:"bodies"`
}

// Load reads and decodes the scene at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}

	scene, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}
	return scene, nil
}

// Parse decodes a scene, rejecting unknown keys and scenes without bodies.
func Parse(data []byte) (*Scene, error) {
	var scene Scene

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scene); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoBodies
		}
		return nil, err
	}
	if len(scene.Bodies) == 0 {
		return nil, ErrNoBodies
	}

	names := make(map[string]bool, len(scene.Bodies))
	for i, spec := range scene.Bodies {
		if spec.Name == "" {
			scene.Bodies[i].Name = fmt.Sprintf("body%d", i)
		}
		name := scene.Bodies[i].Name
		if names[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		names[name] = true
	}

	return &scene, nil
}

// Build creates a body per entry, in file order.
func (s *Scene) Build() ([]*actor.Body, error) {
	bodies := make([]*actor.Body, len(s.Bodies))
	for i, spec := range s.Bodies {
		shape, err := spec.Shape()
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", spec.Name, err)
		}
		bodies[i] = actor.NewBody(shape, spec.Position)
	}

	return bodies, nil
}

// Names returns the body names, in file order.
func (s *Scene) Names() []string {
	names := make([]string, len(s.Bodies))
	for i, spec := range s.Bodies {
		names[i] = spec.Name
	}
	return names
}

// Shape builds the single shape the entry describes.
func (b BodySpec) Shape() (actor.Shape, error) {
	var shapes []actor.Shape
	var err error

	if b.Circle != nil {
		if b.Circle.Radius < 0 {
			return nil, ErrNegativeSize
		}
		shapes = append(shapes, &actor.Circle{Center: b.Circle.Center, Radius: b.Circle.Radius})
	}
	if b.Box != nil {
		if b.Box.Max.X() < b.Box.Min.X() || b.Box.Max.Y() < b.Box.Min.Y() {
			return nil, ErrNegativeSize
		}
		shapes = append(shapes, &actor.Box{Min: b.Box.Min, Max: b.Box.Max})
	}
	if b.Polygon != nil {
		polygon, perr := actor.NewConvexPolygon(b.Polygon.Points...)
		if perr != nil {
			err = perr
		}
		shapes = append(shapes, polygon)
	}
	if b.Rectangle != nil {
		if b.Rectangle.Thickness < 0 {
			return nil, ErrNegativeSize
		}
		shapes = append(shapes, actor.NewRectangle(b.Rectangle.From, b.Rectangle.To, b.Rectangle.Thickness))
	}
	if b.Segment != nil {
		shapes = append(shapes, actor.NewLineSegment(b.Segment.From, b.Segment.To))
	}
	if b.Dot != nil {
		shapes = append(shapes, &actor.Dot{Position: *b.Dot})
	}

	switch {
	case len(shapes) == 0:
		return nil, ErrNoShape
	case len(shapes) > 1:
		return nil, ErrManyShapes
	case err != nil:
		return nil, err
	}
	return shapes[0], nil
}
