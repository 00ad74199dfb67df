package projection

import (
	"math"

	"github.com/paulmach/orb"
)

const epsilon = 1e-6

// conicRaw is the Albers equal-area conic for two standard parallels
// (radians). When the parallels are symmetric about the equator it degrades
// to the cylindrical equal-area projection.
type conicRaw struct {
	n, c, r0 float64
	cylinder bool
	cosPhi0  float64
}

func newConicRaw(phi0, phi1 float64) conicRaw {
	sy0 := math.Sin(phi0)
	n := (sy0 + math.Sin(phi1)) / 2
	if math.Abs(n) < epsilon {
		return conicRaw{cylinder: true, cosPhi0: math.Cos(phi0)}
	}
	c := 1 + sy0*(2*n-sy0)
	return conicRaw{n: n, c: c, r0: math.Sqrt(c) / n}
}

func (r conicRaw) forward(lambda, phi float64) (float64, float64) {
	if r.cylinder {
		return lambda * r.cosPhi0, math.Sin(phi) / r.cosPhi0
	}
	rho := math.Sqrt(r.c-2*r.n*math.Sin(phi)) / r.n
	theta := lambda * r.n
	return rho * math.Sin(theta), r.r0 - rho*math.Cos(theta)
}

func (r conicRaw) inverse(x, y float64) (float64, float64) {
	if r.cylinder {
		return x / r.cosPhi0, math.Asin(clamp1(y * r.cosPhi0))
	}
	r0y := r.r0 - y
	lambda := math.Atan2(x, math.Abs(r0y)) * sign(r0y)
	if r0y*r.n < 0 {
		lambda -= math.Pi * sign(x) * sign(r0y)
	}
	phi := math.Asin(clamp1((r.c - (x*x+r0y*r0y)*r.n*r.n) / (2 * r.n)))
	return lambda / r.n, phi
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func clamp1(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// NewConicEqualArea returns an equal-area conic with the given standard
// parallels, rotated by rotate degrees of longitude and centered on center
// (in rotated coordinates).
func NewConicEqualArea(parallels [2]float64, rotate float64, center orb.Point) Projection {
	r := newConicRaw(parallels[0]*radians, parallels[1]*radians)
	return newTransform(r, rotate, center, 155.424, orb.Point{480, 250})
}

// NewAlbers is the conic equal-area preset for the contiguous United States.
func NewAlbers() Projection {
	p := NewConicEqualArea([2]float64{29.5, 45.5}, 96, orb.Point{-0.6, 38.7})
	p.SetScale(1070)
	return p
}
