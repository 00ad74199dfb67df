package projection

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

type mercatorRaw struct{}

// orb/project works in meters on the WGS84 sphere; divide the radius out to
// get the unit-sphere projection.
func (mercatorRaw) forward(lambda, phi float64) (float64, float64) {
	m := project.WGS84.ToMercator(orb.Point{lambda / radians, phi / radians})
	return m[0] / orb.EarthRadius, m[1] / orb.EarthRadius
}

func (mercatorRaw) inverse(x, y float64) (float64, float64) {
	ll := project.Mercator.ToWGS84(orb.Point{x * orb.EarthRadius, y * orb.EarthRadius})
	return ll[0] * radians, ll[1] * radians
}

// NewMercator returns a spherical Mercator projection centered on (0, 0).
// Latitudes beyond ±85.05 are clamped to the square web-map extent.
func NewMercator() Projection {
	return newTransform(mercatorRaw{}, 0, orb.Point{}, 961/(2*math.Pi), orb.Point{480, 250})
}
