// Package scale maps data values to visual values: positions, radii,
// opacities and colors.
package scale

import "math"

// Extent returns the minimum and maximum of values, ignoring NaN. An empty
// input yields (0, 0).
func Extent(values []float64) (lo, hi float64) {
	first := true
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// ExtentOf is Extent over a field of each record.
func ExtentOf[T any](records []T, field func(T) float64) (float64, float64) {
	vals := make([]float64, len(records))
	for i, r := range records {
		vals[i] = field(r)
	}
	return Extent(vals)
}

// Linear maps Domain onto Range. Without Clamp, inputs outside the domain are
// extrapolated.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
	Clamp  bool
}

func (s Linear) Map(v float64) float64 {
	t, ok := normalize(s.Domain, v, s.Clamp)
	if !ok {
		return s.Range[0]
	}
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Sqrt is a power scale with exponent 0.5, so that area encodings (circle
// radius) grow with the value.
type Sqrt struct {
	Domain [2]float64
	Range  [2]float64
	Clamp  bool
}

func (s Sqrt) Map(v float64) float64 {
	d := [2]float64{signedSqrt(s.Domain[0]), signedSqrt(s.Domain[1])}
	t, ok := normalize(d, signedSqrt(v), s.Clamp)
	if !ok {
		return s.Range[0]
	}
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

func signedSqrt(v float64) float64 {
	if v < 0 {
		return -math.Sqrt(-v)
	}
	return math.Sqrt(v)
}

// normalize returns v's position in the domain as 0..1 (unbounded unless
// clamp). A degenerate domain puts every value at the middle. ok is false
// for NaN.
func normalize(d [2]float64, v float64, clamp bool) (float64, bool) {
	if math.IsNaN(v) {
		return 0, false
	}
	if d[0] == d[1] {
		return 0.5, true
	}
	t := (v - d[0]) / (d[1] - d[0])
	if clamp {
		t = clamp01(t)
	}
	return t, true
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
