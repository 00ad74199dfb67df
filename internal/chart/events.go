package chart

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type EventType int

const (
	PointerEnter EventType = iota
	PointerLeave
	Click
	DoubleClick
)

func (e EventType) String() string {
	switch e {
	case PointerEnter:
		return "pointerenter"
	case PointerLeave:
		return "pointerleave"
	case Click:
		return "click"
	case DoubleClick:
		return "dblclick"
	}
	return "unknown"
}

// Event is delivered to handlers. Shape is nil for background events.
// X and Y are viewport micro-pixel coordinates.
type Event struct {
	Type  EventType
	Shape *Shape
	X, Y  float64
}

type Handler func(ctl *Controller, ev Event)

// Background is the pseudo-layer that receives events not claimed by a shape.
const Background = ""

// On registers a handler for a layer, or for the background when layer is
// Background.
func (r *Renderer) On(layer string, typ EventType, h Handler) {
	m, ok := r.handlers[layer]
	if !ok {
		m = map[EventType][]Handler{}
		r.handlers[layer] = m
	}
	m[typ] = append(m[typ], h)
}

func (r *Renderer) hasHandlers(layer string, typ EventType) bool {
	return len(r.handlers[layer][typ]) > 0
}

func (r *Renderer) interactive(layer string) bool {
	return len(r.handlers[layer]) > 0
}

func (r *Renderer) dispatch(ctl *Controller, layer string, ev Event) {
	for _, h := range r.handlers[layer][ev.Type] {
		h(ctl, ev)
	}
}

// HitTest returns the topmost shape of an interactive layer under the
// viewport point pt, or nil.
func (r *Renderer) HitTest(pt orb.Point, view Transform) *Shape {
	for i := len(r.layers) - 1; i >= 0; i-- {
		l := r.layers[i]
		if l.Hidden || !r.interactive(l.Name) {
			continue
		}
		v := view
		if l.Fixed {
			v = Identity()
		}
		p := v.Invert(pt)
		if s := l.circleAt(p, 1/v.K); s != nil {
			return s
		}
		for j := len(l.Shapes) - 1; j >= 0; j-- {
			s := l.Shapes[j]
			if s.Visible && s.Kind == Path && pathContains(s.Screen, p) {
				return s
			}
		}
	}
	return nil
}

func (l *Layer) circleAt(p orb.Point, slack float64) *Shape {
	if l.circles == nil {
		return nil
	}
	var best *Shape
	bestD := math.Inf(1)
	for _, ptr := range l.circles.KNearest(nil, p, 4, l.maxR+slack) {
		s := ptr.(circlePoint).s
		d := planar.Distance(p, s.Center)
		if d <= s.Style.Radius+slack && d < bestD {
			best, bestD = s, d
		}
	}
	return best
}

func pathContains(g orb.Geometry, p orb.Point) bool {
	if g == nil || !g.Bound().Contains(p) {
		return false
	}
	switch g := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	case orb.Collection:
		for _, c := range g {
			if pathContains(c, p) {
				return true
			}
		}
	}
	return false
}
