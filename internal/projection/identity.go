package projection

import "github.com/paulmach/orb"

// Identity scales and translates planar coordinates that are already in
// screen orientation (y down), such as the cells of a pre-drawn image.
type Identity struct {
	k float64
	t orb.Point
}

var _ Projection = (*Identity)(nil)

func NewIdentity() *Identity { return &Identity{k: 1} }

func (p *Identity) Project(xy orb.Point) (orb.Point, bool) {
	s := orb.Point{xy[0]*p.k + p.t[0], xy[1]*p.k + p.t[1]}
	return s, finite(s)
}

func (p *Identity) Invert(s orb.Point) (orb.Point, bool) {
	if p.k == 0 {
		return orb.Point{}, false
	}
	return orb.Point{(s[0] - p.t[0]) / p.k, (s[1] - p.t[1]) / p.k}, true
}

func (p *Identity) Scale() float64           { return p.k }
func (p *Identity) SetScale(k float64)       { p.k = k }
func (p *Identity) Translate() orb.Point     { return p.t }
func (p *Identity) SetTranslate(t orb.Point) { p.t = t }
