package chart

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Transform is a zoom view: screen = K*p + (X, Y).
type Transform struct {
	K, X, Y float64
}

func Identity() Transform { return Transform{K: 1} }

func (t Transform) Apply(p orb.Point) orb.Point {
	return orb.Point{p[0]*t.K + t.X, p[1]*t.K + t.Y}
}

func (t Transform) Invert(p orb.Point) orb.Point {
	return orb.Point{(p[0] - t.X) / t.K, (p[1] - t.Y) / t.K}
}

func (t Transform) ApplyBound(b orb.Bound) orb.Bound {
	return orb.Bound{Min: t.Apply(b.Min), Max: t.Apply(b.Max)}
}

// ApplyGeometry returns a transformed copy of g.
func (t Transform) ApplyGeometry(g orb.Geometry) orb.Geometry {
	if t == Identity() {
		return g
	}
	return project.Geometry(orb.Clone(g), t.Apply)
}

// ZoomToBounds frames b in a w×h viewport: the bound fills the given
// fraction of the tighter dimension, capped at maxK.
func ZoomToBounds(b orb.Bound, w, h, maxK, fill float64) Transform {
	dx, dy := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	cx, cy := (b.Min[0]+b.Max[0])/2, (b.Min[1]+b.Max[1])/2
	k := maxK
	if s := math.Max(dx/w, dy/h); s > 0 {
		k = math.Min(maxK, fill/s)
	}
	return Transform{K: k, X: w/2 - k*cx, Y: h/2 - k*cy}
}

type Easing func(float64) float64

// EaseQuad is quadratic in-out.
func EaseQuad(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t / 2
	}
	t--
	return (t*(2-t) + 1) / 2
}

// EaseCubic is cubic in-out.
func EaseCubic(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Transition animates between two views in a w×h viewport. The scale moves
// geometrically and the world point under the viewport center linearly.
type Transition struct {
	From, To Transform
	Start    time.Time
	Duration time.Duration
	Ease     Easing
	W, H     float64
}

// At returns the view at now and whether the transition has finished.
// A finished transition yields To exactly.
func (tr Transition) At(now time.Time) (Transform, bool) {
	t := 1.0
	if tr.Duration > 0 {
		t = float64(now.Sub(tr.Start)) / float64(tr.Duration)
	}
	if t >= 1 {
		return tr.To, true
	}
	if t < 0 {
		t = 0
	}
	e := t
	if tr.Ease != nil {
		e = tr.Ease(t)
	}
	mid := orb.Point{tr.W / 2, tr.H / 2}
	a, b := tr.From.Invert(mid), tr.To.Invert(mid)
	k := tr.From.K * math.Pow(tr.To.K/tr.From.K, e)
	c := orb.Point{a[0] + (b[0]-a[0])*e, a[1] + (b[1]-a[1])*e}
	return Transform{K: k, X: mid[0] - k*c[0], Y: mid[1] - k*c[1]}, false
}
