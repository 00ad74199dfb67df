package projection

import "github.com/paulmach/orb"

// AlbersUSA is a composite of three conic equal-area projections: the lower
// 48 states, plus Alaska and Hawaii moved into insets below the Southwest.
// Positions outside all three insets do not project.
type AlbersUSA struct {
	lower48 Projection
	alaska  Projection
	hawaii  Projection
	k       float64
	t       orb.Point
}

var _ Projection = (*AlbersUSA)(nil)

func NewAlbersUSA() *AlbersUSA {
	p := &AlbersUSA{
		lower48: NewAlbers(),
		alaska:  NewConicEqualArea([2]float64{55, 65}, 154, orb.Point{-2, 58.5}),
		hawaii:  NewConicEqualArea([2]float64{8, 18}, 157, orb.Point{-3, 19.9}),
	}
	p.SetScale(1070)
	p.SetTranslate(orb.Point{480, 250})
	return p
}

func (p *AlbersUSA) Scale() float64       { return p.k }
func (p *AlbersUSA) Translate() orb.Point { return p.t }

func (p *AlbersUSA) SetScale(k float64) {
	p.k = k
	p.lower48.SetScale(k)
	p.alaska.SetScale(0.35 * k)
	p.hawaii.SetScale(k)
	p.SetTranslate(p.t)
}

func (p *AlbersUSA) SetTranslate(t orb.Point) {
	p.t = t
	k := p.k
	p.lower48.SetTranslate(t)
	p.alaska.SetTranslate(orb.Point{t[0] - 0.307*k, t[1] + 0.201*k})
	p.hawaii.SetTranslate(orb.Point{t[0] - 0.205*k, t[1] + 0.212*k})
}

// extents are the screen rectangles each inset is clipped to, in the order
// insets are tried.
func (p *AlbersUSA) extents() [3]orb.Bound {
	x, y, k := p.t[0], p.t[1], p.k
	return [3]orb.Bound{
		{Min: orb.Point{x - 0.455*k, y - 0.238*k}, Max: orb.Point{x + 0.455*k, y + 0.238*k}},
		{Min: orb.Point{x - 0.425*k, y + 0.120*k}, Max: orb.Point{x - 0.214*k, y + 0.234*k}},
		{Min: orb.Point{x - 0.214*k, y + 0.166*k}, Max: orb.Point{x - 0.115*k, y + 0.234*k}},
	}
}

func (p *AlbersUSA) Project(ll orb.Point) (orb.Point, bool) {
	ext := p.extents()
	for i, inset := range []Projection{p.lower48, p.alaska, p.hawaii} {
		s, ok := inset.Project(ll)
		if ok && ext[i].Contains(s) {
			return s, true
		}
	}
	return orb.Point{}, false
}

func (p *AlbersUSA) Invert(s orb.Point) (orb.Point, bool) {
	if p.k == 0 {
		return orb.Point{}, false
	}
	x, y := (s[0]-p.t[0])/p.k, (s[1]-p.t[1])/p.k
	switch {
	case y >= 0.120 && y < 0.234 && x >= -0.425 && x < -0.214:
		return p.alaska.Invert(s)
	case y >= 0.166 && y < 0.234 && x >= -0.214 && x < -0.115:
		return p.hawaii.Invert(s)
	}
	return p.lower48.Invert(s)
}
