package projection

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
	"github.com/paulmach/orb/simplify"
)

// Path turns lon/lat geometries into screen geometries.
type Path struct {
	Projection Projection
	// Tolerance is a Douglas-Peucker threshold in screen units applied after
	// projecting. Zero keeps every vertex.
	Tolerance float64
}

var dropped = orb.Point{math.NaN(), math.NaN()}

// Geometry projects a copy of g. Vertices the projection cannot place are
// dropped; rings left with fewer than three distinct vertices and lines with
// fewer than two are removed. Returns nil when nothing is left.
func (pa Path) Geometry(g orb.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	c := project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		s, ok := pa.Projection.Project(p)
		if !ok {
			return dropped
		}
		return s
	})
	c = prune(c)
	if c == nil || pa.Tolerance <= 0 {
		return c
	}
	return simplify.DouglasPeucker(pa.Tolerance).Simplify(c)
}

// Bounds returns the screen bounds of g.
func (pa Path) Bounds(g orb.Geometry) (orb.Bound, bool) {
	s := pa.Geometry(g)
	if s == nil {
		return orb.Bound{}, false
	}
	return s.Bound(), true
}

// Centroid returns the planar centroid of the projected geometry.
func (pa Path) Centroid(g orb.Geometry) (orb.Point, bool) {
	s := pa.Geometry(g)
	if s == nil {
		return orb.Point{}, false
	}
	c, _ := planar.CentroidArea(s)
	return c, finite(c)
}

// Point projects a single position.
func Point(p Projection, ll orb.Point) (orb.Point, bool) {
	return p.Project(ll)
}

func prune(g orb.Geometry) orb.Geometry {
	switch g := g.(type) {
	case orb.Point:
		if !finite(g) {
			return nil
		}
		return g
	case orb.MultiPoint:
		mp := orb.MultiPoint(keep(g))
		if len(mp) == 0 {
			return nil
		}
		return mp
	case orb.LineString:
		if ls := pruneLine(g); ls != nil {
			return ls
		}
		return nil
	case orb.MultiLineString:
		var out orb.MultiLineString
		for _, ls := range g {
			if ls := pruneLine(ls); ls != nil {
				out = append(out, ls)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case orb.Ring:
		if r := pruneRing(g); r != nil {
			return r
		}
		return nil
	case orb.Polygon:
		if p := prunePolygon(g); p != nil {
			return p
		}
		return nil
	case orb.MultiPolygon:
		var out orb.MultiPolygon
		for _, p := range g {
			if p := prunePolygon(p); p != nil {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case orb.Collection:
		var out orb.Collection
		for _, c := range g {
			if c := prune(c); c != nil {
				out = append(out, c)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case orb.Bound:
		if !finite(g.Min) || !finite(g.Max) {
			return nil
		}
		return g
	}
	return nil
}

func keep(pts []orb.Point) []orb.Point {
	out := pts[:0]
	for _, p := range pts {
		if finite(p) {
			out = append(out, p)
		}
	}
	return out
}

func pruneLine(ls orb.LineString) orb.LineString {
	ls = orb.LineString(keep(ls))
	if len(ls) < 2 {
		return nil
	}
	return ls
}

func pruneRing(r orb.Ring) orb.Ring {
	r = orb.Ring(keep(r))
	if len(r) > 0 && !r[0].Equal(r[len(r)-1]) {
		r = append(r, r[0])
	}
	if len(r) < 4 {
		return nil
	}
	return r
}

func prunePolygon(p orb.Polygon) orb.Polygon {
	if len(p) == 0 {
		return nil
	}
	outer := pruneRing(p[0])
	if outer == nil {
		return nil
	}
	out := orb.Polygon{outer}
	for _, h := range p[1:] {
		if h := pruneRing(h); h != nil {
			out = append(out, h)
		}
	}
	return out
}
