// Package render draws a scene and its contact as a character grid.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	feather2d "github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/gjk"
)

const (
	emptyRune   = '.'
	overlapRune = '#'
)

// cell kinds, a body index otherwise
const (
	cellEmpty   = -1
	cellOverlap = -2
)

var bodyColors = []string{"2", "4", "3", "5", "6", "208"}

// Renderer samples bodies on a Width x Height grid covering their union bounds.
type Renderer struct {
	Width  int
	Height int

	empty   lipgloss.Style
	overlap lipgloss.Style
	bodies  []lipgloss.Style
	text    lipgloss.Style
}

// New creates a renderer whose styles target r. Pass a renderer built on a
// non-terminal writer to get plain text.
func New(r *lipgloss.Renderer, width, height int) *Renderer {
	renderer := &Renderer{
		Width:   max(1, width),
		Height:  max(1, height),
		empty:   r.NewStyle().Foreground(lipgloss.Color("245")),
		overlap: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		text:    r.NewStyle().Foreground(lipgloss.Color("7")),
	}
	for _, color := range bodyColors {
		renderer.bodies = append(renderer.bodies, r.NewStyle().Foreground(lipgloss.Color(color)))
	}

	return renderer
}

const glyphs = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// sharedGlyph draws every body past the last distinct glyph.
const sharedGlyph = '+'

// Glyph is the rune drawing body i. The first 62 bodies get distinct glyphs,
// the following ones all share '+'.
func Glyph(i int) rune {
	if i < 0 || i >= len(glyphs) {
		return sharedGlyph
	}
	return rune(glyphs[i])
}

// Render draws the bodies, a legend and the contact when there is one.
// names must match bodies, missing names fall back to the glyph.
func (r *Renderer) Render(bodies []*actor.Body, names []string, contact *feather2d.Contact) (string, error) {
	cells, err := r.sample(bodies)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(r.Width*r.Height*2 + r.Height)

	for y := range r.Height {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells of the same kind
		x := 0
		for x < r.Width {
			kind := cells[y][x]

			var run strings.Builder
			for x < r.Width && cells[y][x] == kind {
				run.WriteRune(r.glyph(kind))
				x++
			}
			sb.WriteString(r.style(kind).Render(run.String()))
		}
	}

	name := func(i int) string {
		switch {
		case i < 0:
			return "?"
		case i < len(names) && names[i] != "":
			return names[i]
		}
		return string(Glyph(i))
	}

	for i, body := range bodies {
		sb.WriteRune('\n')
		sb.WriteString(r.style(i).Render(string(Glyph(i))))
		sb.WriteString(r.text.Render(fmt.Sprintf(" = %s (%s)", name(i), body.Shape.Type())))
	}

	if contact != nil {
		a, b := indexOf(bodies, contact.BodyA), indexOf(bodies, contact.BodyB)
		sb.WriteRune('\n')
		sb.WriteString(r.overlap.Render(fmt.Sprintf("contact %s -> %s normal (%.4f, %.4f) depth %.4f",
			name(a), name(b), contact.Normal.X(), contact.Normal.Y(), contact.Depth)))
	}

	return sb.String(), nil
}

// sample tests the center of every cell against every body.
func (r *Renderer) sample(bodies []*actor.Body) ([][]int, error) {
	cells := make([][]int, r.Height)
	for y := range cells {
		cells[y] = make([]int, r.Width)
		for x := range cells[y] {
			cells[y][x] = cellEmpty
		}
	}
	if len(bodies) == 0 {
		return cells, nil
	}

	bounds := bodies[0].Bounds()
	for _, body := range bodies[1:] {
		bounds = bounds.Union(body.Bounds())
	}
	bounds = pad(bounds)
	size := bounds.Size()
	step := mgl64.Vec2{size.X() / float64(r.Width), size.Y() / float64(r.Height)}

	probe := actor.NewBody(&actor.Dot{}, mgl64.Vec2{})
	for y := range r.Height {
		for x := range r.Width {
			// Rows go downward, the world y axis goes up
			probe.Transform.Position = mgl64.Vec2{
				bounds.Min.X() + (float64(x)+0.5)*step.X(),
				bounds.Max.Y() - (float64(y)+0.5)*step.Y(),
			}

			for i, body := range bodies {
				inside, err := gjk.Collides(body, probe)
				if err != nil {
					return nil, fmt.Errorf("body %d at cell (%d, %d): %w", i, x, y, err)
				}
				if !inside {
					continue
				}
				if cells[y][x] == cellEmpty {
					cells[y][x] = i
				} else {
					cells[y][x] = cellOverlap
				}
			}
		}
	}

	return cells, nil
}

func (r *Renderer) glyph(kind int) rune {
	switch kind {
	case cellEmpty:
		return emptyRune
	case cellOverlap:
		return overlapRune
	}
	return Glyph(kind)
}

func (r *Renderer) style(kind int) lipgloss.Style {
	switch kind {
	case cellEmpty:
		return r.empty
	case cellOverlap:
		return r.overlap
	}
	return r.bodies[kind%len(r.bodies)]
}

// pad grows flat bounds so points and segments still cover some cells.
func pad(bounds actor.AABB) actor.AABB {
	margin := mgl64.Vec2{}
	size := bounds.Size()
	if size.X() == 0 {
		margin[0] = 0.5
	}
	if size.Y() == 0 {
		margin[1] = 0.5
	}

	return actor.AABB{Min: bounds.Min.Sub(margin), Max: bounds.Max.Add(margin)}
}

func indexOf(bodies []*actor.Body, body *actor.Body) int {
	for i, b := range bodies {
		if b == body {
			return i
		}
	}
	return -1
}
