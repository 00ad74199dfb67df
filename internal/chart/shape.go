// Package chart binds records to shapes, projects them, draws them and
// routes pointer events to per-layer handlers. A Controller owns all of a
// chart's mutable state: projections, shapes, the view transform and the
// transient label.
package chart

import (
	"github.com/paulmach/orb"
)

type Kind int

const (
	Path   Kind = iota // polygon or line geometry
	Circle             // dot at a position
	Label              // text at a position or at a path centroid
)

// Style holds the visual attributes of a shape. Colors are "#rrggbb";
// an empty color disables that paint.
type Style struct {
	Fill        string
	FillOpacity float64
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	Radius      float64 // circles, in micro-pixels
}

// DefaultStyle is fully opaque with a one-dot stroke width and no paints.
func DefaultStyle() Style {
	return Style{FillOpacity: 1, StrokeWidth: 1, Opacity: 1}
}

// Shape is the on-screen representation of one record.
type Shape struct {
	ID     string
	Name   string // searchable display name
	Layer  string
	Record int // index into the chart's record slice
	Kind   Kind
	Geo    orb.Geometry // source coordinates; an orb.Point for point-anchored shapes
	Text   string
	Style  Style

	// Set by Renderer.Apply.
	Screen  orb.Geometry
	Center  orb.Point
	Visible bool

	saved *Style
}

// Highlight applies modify to the current style, remembering the style it
// had before the first of a series of Highlight calls.
func (s *Shape) Highlight(modify func(*Style)) {
	if s.saved == nil {
		st := s.Style
		s.saved = &st
	}
	modify(&s.Style)
}

// Restore returns the shape to its pre-highlight style.
func (s *Shape) Restore() {
	if s.saved == nil {
		return
	}
	s.Style = *s.saved
	s.saved = nil
}

func (s *Shape) Highlighted() bool { return s.saved != nil }

// Bound is the pre-zoom screen bound of the shape.
func (s *Shape) Bound() orb.Bound {
	if s.Kind == Path && s.Screen != nil {
		return s.Screen.Bound()
	}
	r := s.Style.Radius
	return orb.Bound{
		Min: orb.Point{s.Center[0] - r, s.Center[1] - r},
		Max: orb.Point{s.Center[0] + r, s.Center[1] + r},
	}
}
