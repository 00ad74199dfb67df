// Package projection maps lon/lat (degrees) to screen space (micro-pixels,
// y down) and back.
package projection

import (
	"math"

	"github.com/paulmach/orb"
)

const radians = math.Pi / 180

// Projection is a stateful planar mapping. Between calls to SetScale and
// SetTranslate the mapping is a pure function of the input.
type Projection interface {
	// Project returns ok=false for points the projection cannot place
	// (outside every inset, non-finite results).
	Project(lonlat orb.Point) (orb.Point, bool)
	Invert(xy orb.Point) (orb.Point, bool)

	Scale() float64
	SetScale(k float64)
	Translate() orb.Point
	SetTranslate(t orb.Point)
}

// raw is an unscaled projection working in radians, y up.
type raw interface {
	forward(lambda, phi float64) (x, y float64)
	inverse(x, y float64) (lambda, phi float64)
}

// transform applies rotation (longitude only), centering, scale and
// translation around a raw projection.
type transform struct {
	raw    raw
	rotate float64 // radians added to longitude
	cx, cy float64 // raw position of the center
	k      float64
	t      orb.Point
}

func newTransform(r raw, rotate float64, center orb.Point, k float64, t orb.Point) *transform {
	cx, cy := r.forward(center[0]*radians, center[1]*radians)
	return &transform{raw: r, rotate: rotate * radians, cx: cx, cy: cy, k: k, t: t}
}

func (p *transform) Project(ll orb.Point) (orb.Point, bool) {
	x, y := p.raw.forward(wrap(ll[0]*radians+p.rotate), ll[1]*radians)
	s := orb.Point{p.t[0] + p.k*(x-p.cx), p.t[1] - p.k*(y-p.cy)}
	return s, finite(s)
}

func (p *transform) Invert(s orb.Point) (orb.Point, bool) {
	if p.k == 0 {
		return orb.Point{}, false
	}
	x := (s[0]-p.t[0])/p.k + p.cx
	y := p.cy - (s[1]-p.t[1])/p.k
	lambda, phi := p.raw.inverse(x, y)
	ll := orb.Point{wrap(lambda-p.rotate) / radians, phi / radians}
	return ll, finite(ll)
}

func (p *transform) Scale() float64           { return p.k }
func (p *transform) SetScale(k float64)       { p.k = k }
func (p *transform) Translate() orb.Point     { return p.t }
func (p *transform) SetTranslate(t orb.Point) { p.t = t }

// wrap normalizes a longitude in radians to [-π, π].
func wrap(lambda float64) float64 {
	if lambda > math.Pi {
		return lambda - 2*math.Pi
	}
	if lambda < -math.Pi {
		return lambda + 2*math.Pi
	}
	return lambda
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0)
}

// FitSize sets scale and translate so that g fills a w×h viewport, centered
// on the shorter axis.
func FitSize(p Projection, w, h float64, g orb.Geometry) {
	FitExtent(p, orb.Bound{Max: orb.Point{w, h}}, g)
}

// FitExtent is FitSize into an arbitrary screen rectangle.
func FitExtent(p Projection, extent orb.Bound, g orb.Geometry) {
	const reference = 150
	p.SetScale(reference)
	p.SetTranslate(orb.Point{})
	b, ok := Path{Projection: p}.Bounds(g)
	if !ok {
		return
	}
	w, h := extent.Max[0]-extent.Min[0], extent.Max[1]-extent.Min[1]
	dx, dy := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	var k float64
	switch {
	case dx > 0 && dy > 0:
		k = math.Min(w/dx, h/dy)
	case dx > 0:
		k = w / dx
	case dy > 0:
		k = h / dy
	default:
		return
	}
	p.SetScale(reference * k)
	p.SetTranslate(orb.Point{
		extent.Min[0] + (w-k*(b.Max[0]+b.Min[0]))/2,
		extent.Min[1] + (h-k*(b.Max[1]+b.Min[1]))/2,
	})
}
